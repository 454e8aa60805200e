package models

type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type CheckStatus struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status string                 `json:"status"`
	Checks map[string]CheckStatus `json:"checks"`
}
