package api

// Environment is the wire representation of an environment, mapped from the
// snake_case row representation at the service boundary.
type Environment struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"`
	SortOrder   int    `json:"sortOrder"`
	Enabled     bool   `json:"enabled"`
	Protected   bool   `json:"protected"`
}

// EnvironmentsResponse wraps the environment listing.
type EnvironmentsResponse struct {
	Version      int            `json:"version"`
	Environments []*Environment `json:"environments"`
}

// CreateEnvironmentRequest is the POST /environments payload. Enabled
// defaults to true when omitted; protected is not settable through the API.
type CreateEnvironmentRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"`
	SortOrder   int    `json:"sortOrder"`
	Enabled     *bool  `json:"enabled"`
}

// UpdateEnvironmentRequest is the PUT /environments/:name payload. Nil
// fields are left untouched. Protected is accepted for wire compatibility
// but always written as false.
type UpdateEnvironmentRequest struct {
	DisplayName *string `json:"displayName"`
	Type        *string `json:"type"`
	Protected   *bool   `json:"protected"`
}

// SortOrderMap maps environment names to their display position.
type SortOrderMap map[string]int

// ValidateEnvironmentNameRequest is the POST /environments/validate payload.
type ValidateEnvironmentNameRequest struct {
	Name string `json:"name"`
}

// ConnectEnvironmentRequest opts a project into an environment.
type ConnectEnvironmentRequest struct {
	Environment string `json:"environment"`
}

// CreateProjectRequest is the POST /projects payload.
type CreateProjectRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateFeatureRequest adds a feature to a project.
type CreateFeatureRequest struct {
	Name string `json:"name"`
}
