package health

// ServiceName identifies this API in health payloads.
const ServiceName = "job-optimizer-api"

// Service builds the static metadata payloads.
type Service struct {
	AppName  string
	Version  string
	Provider string
	Model    string
}

// NewService constructs a new health service.
func NewService(appName, version, provider, model string) *Service {
	return &Service{AppName: appName, Version: version, Provider: provider, Model: model}
}

// Endpoints maps a short name to each public route.
var Endpoints = map[string]string{
	"health":             "/health",
	"info":               "/info",
	"metrics":            "/metrics",
	"resume_upload":      "/api/resume/upload",
	"resume_analyze":     "/api/resume/analyze",
	"ats_check":          "/api/resume/ats-check",
	"company_research":   "/api/company/research",
	"recommendations":    "/api/analysis/recommendations",
	"generate_documents": "/api/documents/generate",
	"download_document":  "/api/documents/download/{filename}",
}

type RootPayload struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

type StatusPayload struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type InfoPayload struct {
	AppName          string   `json:"app_name"`
	Version          string   `json:"version"`
	Description      string   `json:"description"`
	Features         []string `json:"features"`
	AIProvider       string   `json:"ai_provider"`
	AIModel          string   `json:"ai_model"`
	SupportedFormats []string `json:"supported_formats"`
	OutputFormats    []string `json:"output_formats"`
}

func (s *Service) Root() RootPayload {
	return RootPayload{
		Message:   s.AppName + " API",
		Version:   s.Version,
		Status:    "active",
		Endpoints: Endpoints,
	}
}

// Status returns a simple health payload.
func (s *Service) Status() StatusPayload {
	return StatusPayload{Status: "healthy", Service: ServiceName, Version: s.Version}
}

func (s *Service) Info() InfoPayload {
	return InfoPayload{
		AppName:     s.AppName,
		Version:     s.Version,
		Description: "AI-powered job application optimization",
		Features: []string{
			"Resume Analysis",
			"ATS Compatibility Check",
			"Company Research",
			"Document Generation",
			"Personalized Recommendations",
		},
		AIProvider:       s.Provider,
		AIModel:          s.Model,
		SupportedFormats: []string{"PDF"},
		OutputFormats:    []string{"DOCX", "JSON"},
	}
}
