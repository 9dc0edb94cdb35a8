package dto

type Session struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
	Home          string `json:"home"`
}

type GuardDecision struct {
	Path     string `json:"path"`
	Decision string `json:"decision"`
	Target   string `json:"target,omitempty"`
}
