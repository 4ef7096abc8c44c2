package service

import (
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/groupsplit/internal/api"
	"github.com/mmynk/groupsplit/internal/auth"
	"github.com/mmynk/groupsplit/internal/calculator"
	"github.com/mmynk/groupsplit/internal/metrics"
	"github.com/mmynk/groupsplit/internal/middleware"
	"github.com/mmynk/groupsplit/internal/storage"
)

// Deps are the collaborators the services need.
type Deps struct {
	Store         storage.Store
	Authenticator auth.Authenticator
	JWT           *auth.JWTManager
	Metrics       *metrics.Metrics // optional
	Settler       calculator.Settler
	Logger        *slog.Logger // optional
}

// Routes builds the handlers for every service. Register and Login are public;
// every other procedure requires a valid bearer token.
func Routes(d Deps) []api.Route {
	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(d.Metrics),
		middleware.RequireAuth(d.JWT, api.AuthServiceRegisterProcedure, api.AuthServiceLoginProcedure),
	)

	authPath, authHandler := api.NewAuthServiceHandler(
		NewAuthService(d.Authenticator, d.JWT, d.Store, d.Logger), interceptors)
	groupPath, groupHandler := api.NewGroupServiceHandler(
		NewGroupService(d.Store, d.Settler), interceptors)
	expensePath, expenseHandler := api.NewExpenseServiceHandler(
		NewExpenseService(d.Store, d.Metrics, d.Settler), interceptors)

	return []api.Route{
		{Path: authPath, Handler: authHandler},
		{Path: groupPath, Handler: groupHandler},
		{Path: expensePath, Handler: expenseHandler},
	}
}
