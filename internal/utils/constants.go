package utils

const (
	AppName    = "maintenance-service"
	AppVersion = "1.0.0"

	CORSLowSecurityAllowedOriginVite  = "http://localhost:5173"
	CORSLowSecurityAllowedOriginReact = "http://localhost:3000"
)
