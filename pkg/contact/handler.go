package contact

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prospectcrm/prospect/internal/rest"
	"github.com/prospectcrm/prospect/pkg/company"
)

type Handler struct {
	service *Service
}

type ContactDTO struct {
	Id        int    `json:"id"`
	CompanyId int    `json:"companyId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

// ListContacts godoc
// @Summary List contacts of a company
// @Tags Contact
// @Produce json
// @Param companyId path int true "Company ID"
// @Success 200 {array} ContactDTO
// @Router /api/companies/{companyId}/contact [get]
// @Security XUserId
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	companyId, ok := pathInt(w, r, "companyId")
	if !ok {
		return
	}

	contacts, err := h.service.GetContactsByCompany(r.Context(), companyId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ContactDTO, 0, len(contacts))
	for _, c := range contacts {
		dtos = append(dtos, contactToDTO(c))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateContact godoc
// @Summary Create a contact for a company
// @Tags Contact
// @Accept json
// @Produce json
// @Param companyId path int true "Company ID"
// @Param contact body ContactDTO true "Contact"
// @Success 201 {object} ContactDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/companies/{companyId}/contact [post]
// @Security XUserId
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	companyId, ok := pathInt(w, r, "companyId")
	if !ok {
		return
	}

	var dto ContactDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	if dto.FirstName == "" && dto.LastName == "" {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Contact name is required",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	contact := dtoToContact(dto)
	contact.CompanyId = companyId

	created, err := h.service.AddContact(r.Context(), contact)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(contactToDTO(*created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateContact godoc
// @Summary Update a contact
// @Tags Contact
// @Accept json
// @Produce json
// @Param contactId path int true "Contact ID"
// @Param contact body ContactDTO true "Contact"
// @Success 200 {object} ContactDTO
// @Failure 404 {string} string "Contact not found"
// @Router /api/contact/{contactId} [put]
// @Security XUserId
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	contactId, ok := pathInt(w, r, "contactId")
	if !ok {
		return
	}

	var dto ContactDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}
	contact := dtoToContact(dto)
	contact.Id = contactId

	updated, err := h.service.ModifyContact(r.Context(), contact)
	if err != nil {
		if errors.Is(err, ErrContactNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(contactToDTO(*updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteContact godoc
// @Summary Delete a contact
// @Tags Contact
// @Param contactId path int true "Contact ID"
// @Success 204
// @Failure 404 {string} string "Contact not found"
// @Router /api/contact/{contactId} [delete]
// @Security XUserId
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	contactId, ok := pathInt(w, r, "contactId")
	if !ok {
		return
	}

	err := h.service.DeleteContact(r.Context(), contactId)
	if err != nil {
		if errors.Is(err, ErrContactNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars[name])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid path parameter",
			Details: "'" + name + "' must be an integer",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return 0, false
	}
	return id, true
}

func contactToDTO(c Contact) ContactDTO {
	return ContactDTO{
		Id:        c.Id,
		CompanyId: c.CompanyId,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Role:      c.Role,
	}
}

func dtoToContact(dto ContactDTO) Contact {
	return Contact{
		Id:        dto.Id,
		CompanyId: dto.CompanyId,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Role:      dto.Role,
	}
}
