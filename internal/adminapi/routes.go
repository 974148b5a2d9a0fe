package adminapi

// RegisterRoutes wires every admin API handler onto the web server. Must be
// called after webserver.Init.
func RegisterRoutes() {
	registerProductRoutes()
	registerSaleRoutes()
}
