package endpoints

import (
	"github.com/cxcds/usint-in-go/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterOcatdatapageEndpoints(srv)
	RegisterOrupdateEndpoints(srv)
	RegisterRmSubmissionEndpoints(srv)
	RegisterExpressEndpoints(srv)
	RegisterChkupdataEndpoints(srv)
	RegisterSchedulerEndpoints(srv)
	RegisterStatusEndpoints(srv)
	RegisterWhoamiEndpoint(srv)
}
