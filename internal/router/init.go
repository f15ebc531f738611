package router

import (
	"github.com/oksasatya/fittrack-api/internal/application"
	"github.com/oksasatya/fittrack-api/internal/container"
	handlers "github.com/oksasatya/fittrack-api/internal/interface/http"
	"github.com/oksasatya/fittrack-api/internal/interface/middleware"
	"github.com/oksasatya/fittrack-api/internal/router/modules"
)

type services struct {
	Auth     *application.AuthService
	Profile  *application.ProfileService
	Workouts *application.WorkoutService
	Goals    *application.GoalService
	Stats    *application.StatsService
	Admin    *application.AdminService
	Settings *application.SettingsService
}

func buildServices(c *container.Container) services {
	repos := c.Repos

	auth := application.NewAuthService(repos.Users, c.JWT, c.Logger)
	auth.AppName = c.Config.AppName
	auth.AppURL = c.Config.AppURL
	auth.SupportURL = c.Config.SupportURL

	profile := application.NewProfileService(repos.Users, c.Logger)
	admin := application.NewAdminService(repos.Users, repos.Stats, c.Logger)

	// nil pointers must not leak into the optional interface fields
	if c.Search != nil {
		auth.Index = c.Search
		profile.Index = c.Search
		admin.Index = c.Search
	}
	if c.Mail != nil && c.Config.MailSendEnabled {
		auth.Mail = c.Mail
	}

	return services{
		Auth:     auth,
		Profile:  profile,
		Workouts: application.NewWorkoutService(repos.Workouts),
		Goals:    application.NewGoalService(repos.Goals),
		Stats:    application.NewStatsService(repos.Users, repos.Workouts, repos.Goals),
		Admin:    admin,
		Settings: application.NewSettingsService(repos.Settings, c.SettingsCache(), c.Logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, c *container.Container) {
	svc := buildServices(c)
	gate := middleware.NewGate(c.JWT, c.Repos.Users, c.Logger)

	r.Add(modules.NewDebugModule(
		handlers.NewHealthHandler(c.DB, c.Config.Env, c.Logger),
		c.Config.DebugMetricsEnabled,
	))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, c.Cookies, c.Logger)))
	r.Add(&modules.UserModule{
		Gate:     gate,
		Profile:  handlers.NewProfileHandler(svc.Profile, c.Logger),
		Workouts: handlers.NewWorkoutHandler(svc.Workouts, c.Logger),
		Goals:    handlers.NewGoalHandler(svc.Goals, c.Logger),
		Stats:    handlers.NewStatsHandler(svc.Stats, c.Logger),
	})
	r.Add(modules.NewAdminModule(gate, handlers.NewAdminHandler(svc.Admin, svc.Settings, c.Logger)))
}
