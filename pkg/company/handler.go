package company

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prospectcrm/prospect/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

type CompanyDTO struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry"`
	Website   string    `json:"website"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

// ListCompanies godoc
// @Summary List companies of the current user
// @Tags Company
// @Produce json
// @Success 200 {array} CompanyDTO
// @Router /api/companies [get]
// @Security XUserId
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	companies, err := h.service.GetCompanies(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]CompanyDTO, 0, len(companies))
	for _, c := range companies {
		dtos = append(dtos, companyToDTO(c))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateCompany godoc
// @Summary Create a company
// @Tags Company
// @Accept json
// @Produce json
// @Param company body CompanyDTO true "Company"
// @Success 201 {object} CompanyDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/companies [post]
// @Security XUserId
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Creating company")

	var dto CompanyDTO
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

	if dto.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Company name is required",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	created, err := h.service.AddCompany(r.Context(), dtoToCompany(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(companyToDTO(*created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetCompany godoc
// @Summary Get a single company
// @Tags Company
// @Produce json
// @Param companyId path int true "Company ID"
// @Success 200 {object} CompanyDTO
// @Failure 404 {string} string "Company not found"
// @Router /api/companies/{companyId} [get]
// @Security XUserId
func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := companyIdFromRequest(w, r)
	if !ok {
		return
	}

	company, err := h.service.GetCompany(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(companyToDTO(company)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateCompany godoc
// @Summary Update a company
// @Tags Company
// @Accept json
// @Produce json
// @Param companyId path int true "Company ID"
// @Param company body CompanyDTO true "Company"
// @Success 200 {object} CompanyDTO
// @Failure 404 {string} string "Company not found"
// @Router /api/companies/{companyId} [put]
// @Security XUserId
func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := companyIdFromRequest(w, r)
	if !ok {
		return
	}

	var dto CompanyDTO
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
	company := dtoToCompany(dto)
	company.Id = id

	updated, err := h.service.ModifyCompany(r.Context(), company)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(companyToDTO(*updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteCompany godoc
// @Summary Delete a company
// @Tags Company
// @Param companyId path int true "Company ID"
// @Success 204
// @Failure 404 {string} string "Company not found"
// @Router /api/companies/{companyId} [delete]
// @Security XUserId
func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := companyIdFromRequest(w, r)
	if !ok {
		return
	}

	err := h.service.DeleteCompany(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func companyIdFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["companyId"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid company id",
			Details: "'companyId' must be an integer",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return 0, false
	}
	return id, true
}

func companyToDTO(c Company) CompanyDTO {
	return CompanyDTO{
		Id:        c.Id,
		Name:      c.Name,
		Industry:  c.Industry,
		Website:   c.Website,
		Location:  c.Location,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}

func dtoToCompany(dto CompanyDTO) Company {
	return Company{
		Id:       dto.Id,
		Name:     dto.Name,
		Industry: dto.Industry,
		Website:  dto.Website,
		Location: dto.Location,
		Status:   Status(dto.Status),
	}
}
