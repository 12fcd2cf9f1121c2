package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/", s.index)
	s.echo.HEAD("/", s.head)
	s.echo.POST("/generate", s.generate)

	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)
}
