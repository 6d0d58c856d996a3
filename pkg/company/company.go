package company

import (
	"context"
	"time"
)

type Status string

const (
	StatusLead    Status = "lead"
	StatusActive  Status = "active"
	StatusDormant Status = "dormant"
)

type Company struct {
	Id        int
	Name      string
	Industry  string
	Website   string
	Location  string
	Status    Status
	CreatedAt time.Time
}

// ProviderFunc resolves a company of the current user by id. It is injected
// into collaborating packages so they do not depend on this package's service.
type ProviderFunc func(ctx context.Context, id int) (Company, error)
