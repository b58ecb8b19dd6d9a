// Package handlers contains reusable HTTP pieces shared by the API server:
// the composite health checker and generic middleware.
//
// # Health Checks
//
// Named checks run in parallel, each under its own timeout:
//
//	checker := handlers.NewCompositeHealthChecker("v1.0.0")
//	checker.AddCheck("database", handlers.NewDatabaseCheck(store))
//
//	status := checker.Check(ctx)
//
// # Middleware
//
//	handler := handlers.ChainHandler(
//	    router,
//	    handlers.SecurityHeadersMiddleware,
//	    handlers.RequestSizeLimitMiddleware(1<<20),
//	)
package handlers
