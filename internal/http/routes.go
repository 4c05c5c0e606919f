// Package http wires every resource handler onto the Fiber resource tree
// the gateway exposes, grounded on the teacher's flat
// bootstrap/http.NewRouter function (one fiber.App, ordered middleware,
// then the full route list).
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/bondifuzz/api-gateway/internal/http/handlers"
	"github.com/bondifuzz/api-gateway/internal/http/middleware"
	"github.com/bondifuzz/api-gateway/internal/httpx"
	"github.com/bondifuzz/api-gateway/pkg/mlog"
)

// Handlers aggregates every resource handler NewRouter wires onto the
// tree, one field per handlers.NewXxxHandler constructor.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Users        *handlers.UserHandler
	Projects     *handlers.ProjectHandler
	Pools        *handlers.PoolHandler
	Fuzzers      *handlers.FuzzerHandler
	Revisions    *handlers.RevisionHandler
	Uploads      *handlers.UploadHandler
	Catalog      *handlers.CatalogHandler
	Integrations *handlers.IntegrationHandler
	Stats        *handlers.StatsHandler
	Unsent       *handlers.UnsentHandler
}

// NewRouter builds the gateway's fiber.App: ambient middleware first, then
// every route in the resource tree, auth/CSRF/admin/hierarchy gates
// composed per route the way the teacher composes jwt.ProtectHTTP with
// jwt.WithPermissionHTTP.
func NewRouter(logger mlog.Logger, version string, auth *middleware.Auth, hier *middleware.Hierarchy, h Handlers) *fiber.App {
	f := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		StreamRequestBody:     true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return httpx.WithError(c, err)
		},
	})

	f.Use(recover.New())
	f.Use(cors.New())
	f.Use(middleware.WithCorrelationID())
	f.Use(middleware.WithHTTPLogging(logger))

	f.Get("/health", func(c *fiber.Ctx) error { return c.SendString("healthy") })
	f.Get("/version", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"version": version}) })

	api := f.Group("/api/v1")

	registerPublicRoutes(api, h)
	registerSessionRoutes(api, auth, hier, h)

	return f
}

// registerPublicRoutes mounts the handful of endpoints reachable without a
// session: login and the read-only platform catalog.
func registerPublicRoutes(api fiber.Router, h Handlers) {
	api.Post("/login", h.Auth.Login)

	cfg := api.Group("/config")
	cfg.Get("/langs", h.Catalog.ListLangs)
	cfg.Get("/engines", h.Catalog.ListEngines)
	cfg.Get("/integration_types", h.Catalog.ListIntegrationTypes)
	cfg.Get("/", func(c *fiber.Ctx) error {
		engines, err := h.Catalog.Commands.ListEngines(c.UserContext())
		if err != nil {
			return httpx.WithError(c, err)
		}

		langs, err := h.Catalog.Commands.ListLangs(c.UserContext())
		if err != nil {
			return httpx.WithError(c, err)
		}

		types, err := h.Catalog.Commands.ListIntegrationTypes(c.UserContext())
		if err != nil {
			return httpx.WithError(c, err)
		}

		return httpx.OK(c, fiber.Map{"engines": engines, "langs": langs, "integration_types": types})
	})
}

// registerSessionRoutes mounts every endpoint that requires
// SESSION_ID/USER_ID to already resolve to a caller.
func registerSessionRoutes(api fiber.Router, auth *middleware.Auth, hier *middleware.Hierarchy, h Handlers) {
	session := api.Group("", auth.RequireSession)

	session.Post("/logout", auth.RequireCSRF, h.Auth.Logout)
	session.Post("/security/csrf-token", h.Auth.RefreshCSRFToken)

	registerUserRoutes(session, auth, hier, h)
	registerAdminRoutes(session, auth, h)
}

func registerUserRoutes(session fiber.Router, auth *middleware.Auth, hier *middleware.Hierarchy, h Handlers) {
	users := session.Group("/users")

	users.Get("/self", h.Users.GetSelf)
	users.Patch("/self", auth.RequireCSRF, h.Users.UpdateSelf)
	users.Get("", auth.RequireAdmin, h.Users.List)
	users.Post("", auth.RequireAdmin, auth.RequireCSRF, h.Users.Create)
	users.Get("/lookup", auth.RequireAdmin, h.Users.Lookup)
	users.Get("/count", auth.RequireAdmin, h.Users.Count)

	target := users.Group("/:user_id", hier.ResolveTargetUser)
	target.Get("", h.Users.Get)
	target.Patch("", auth.RequireCSRF, h.Users.Update)
	target.Delete("", auth.RequireCSRF, h.Users.Remove)

	registerPoolRoutes(target, auth, h)
	registerProjectRoutes(target, auth, hier, h)
}

// registerPoolRoutes mounts the /users/{user_id}/pools client subtree: the
// account-scoped view over the external pool-manager.
func registerPoolRoutes(target fiber.Router, auth *middleware.Auth, h Handlers) {
	pools := target.Group("/pools")

	pools.Get("", h.Pools.List)
	pools.Post("", auth.RequireCSRF, h.Pools.Create)
	pools.Get("/:pool_id", h.Pools.Get)
	pools.Delete("/:pool_id", auth.RequireCSRF, h.Pools.Remove)
}

func registerProjectRoutes(target fiber.Router, auth *middleware.Auth, hier *middleware.Hierarchy, h Handlers) {
	projects := target.Group("/projects")

	projects.Get("", h.Projects.List)
	projects.Post("", auth.RequireCSRF, h.Projects.Create)

	proj := projects.Group("/:project_id", hier.ResolveProject)
	proj.Get("", h.Projects.Get)
	proj.Patch("", auth.RequireCSRF, h.Projects.Update)
	proj.Delete("", auth.RequireCSRF, h.Projects.Remove)

	proj.Put("/pool", auth.RequireCSRF, h.Pools.Bind)
	proj.Delete("/pool", auth.RequireCSRF, h.Pools.Unbind)

	registerIntegrationRoutes(proj, auth, h)
	registerImageRoutes(proj, auth, h)
	registerFuzzerRoutes(proj, auth, hier, h)
}

func registerIntegrationRoutes(proj fiber.Router, auth *middleware.Auth, h Handlers) {
	ig := proj.Group("/integrations")

	ig.Get("", h.Integrations.List)
	ig.Post("", auth.RequireCSRF, h.Integrations.Create)
	ig.Get("/:integration_id", h.Integrations.Get)
	ig.Patch("/:integration_id", auth.RequireCSRF, h.Integrations.Update)
	ig.Delete("/:integration_id", auth.RequireCSRF, h.Integrations.Remove)
}

func registerImageRoutes(proj fiber.Router, auth *middleware.Auth, h Handlers) {
	img := proj.Group("/images")

	img.Get("", h.Catalog.ListImages)
	img.Post("", auth.RequireCSRF, h.Catalog.CreateProjectImage)
	img.Get("/:image_id", h.Catalog.GetImage)
	img.Delete("/:image_id", auth.RequireCSRF, h.Catalog.DeleteImage)
}

func registerFuzzerRoutes(proj fiber.Router, auth *middleware.Auth, hier *middleware.Hierarchy, h Handlers) {
	fuzzers := proj.Group("/fuzzers")

	fuzzers.Get("", h.Fuzzers.List)
	fuzzers.Post("", auth.RequireCSRF, h.Fuzzers.Create)
	fuzzers.Get("/trashbin", h.Fuzzers.ListTrashbin)
	fuzzers.Get("/trashbin/count", h.Fuzzers.CountTrashbin)
	fuzzers.Delete("/trashbin/:fuzzer_id", auth.RequireCSRF, h.Fuzzers.EraseTrashbin)

	fz := fuzzers.Group("/:fuzzer_id", hier.ResolveFuzzer)
	fz.Get("", h.Fuzzers.Get)
	fz.Patch("", auth.RequireCSRF, h.Fuzzers.Update)
	fz.Delete("", auth.RequireCSRF, h.Fuzzers.Remove)

	fz.Post("/actions/start", auth.RequireCSRF, h.Fuzzers.StartActive)
	fz.Post("/actions/restart", auth.RequireCSRF, h.Fuzzers.RestartActive)
	fz.Post("/actions/stop", auth.RequireCSRF, h.Fuzzers.StopActive)
	fz.Get("/files/corpus", h.Uploads.DownloadActiveCorpus)

	fz.Get("/statistics", h.Stats.GetFuzzerStatistics)
	fz.Get("/crashes", h.Stats.ListFuzzerCrashes)
	fz.Get("/crashes/statistics", h.Stats.GetFuzzerCrashStatistics)

	fz.Get("/revisions/active", h.Fuzzers.GetActiveRevision)
	fz.Put("/revisions/active", auth.RequireCSRF, h.Fuzzers.SetActiveRevision)

	registerRevisionRoutes(fz, auth, hier, h)
}

func registerRevisionRoutes(fz fiber.Router, auth *middleware.Auth, hier *middleware.Hierarchy, h Handlers) {
	revisions := fz.Group("/revisions")

	revisions.Get("", h.Revisions.List)
	revisions.Post("", auth.RequireCSRF, h.Revisions.Create)

	rev := revisions.Group("/:revision_id", hier.ResolveRevision)
	rev.Get("", h.Revisions.Get)
	rev.Delete("", auth.RequireCSRF, h.Revisions.Remove)
	rev.Patch("/resources", auth.RequireCSRF, h.Revisions.Update)

	rev.Post("/actions/start", auth.RequireCSRF, h.Revisions.Start)
	rev.Post("/actions/restart", auth.RequireCSRF, h.Revisions.Restart)
	rev.Post("/actions/stop", auth.RequireCSRF, h.Revisions.Stop)
	rev.Post("/actions/copy-corpus", auth.RequireCSRF, h.Revisions.CopyCorpus)

	rev.Get("/files/binaries", h.Uploads.DownloadBinaries)
	rev.Put("/files/binaries", auth.RequireCSRF, h.Uploads.UploadBinaries)
	rev.Get("/files/seeds", h.Uploads.DownloadSeeds)
	rev.Put("/files/seeds", auth.RequireCSRF, h.Uploads.UploadSeeds)
	rev.Get("/files/config", h.Uploads.DownloadConfig)
	rev.Put("/files/config", auth.RequireCSRF, h.Uploads.UploadConfig)
	rev.Get("/files/corpus", h.Uploads.DownloadCorpus)

	rev.Get("/statistics", h.Stats.GetRevisionStatistics)
	rev.Get("/crashes", h.Stats.ListRevisionCrashes)
	rev.Get("/crashes/statistics", h.Stats.GetRevisionCrashStatistics)
}

// registerAdminRoutes mounts the platform-admin catalogs and the
// operator-facing unsent-message log, every route gated on RequireAdmin.
func registerAdminRoutes(session fiber.Router, auth *middleware.Auth, h Handlers) {
	admin := session.Group("/admin", auth.RequireAdmin)

	admin.Get("/unsent-messages", h.Unsent.List)

	images := admin.Group("/images")
	images.Get("", h.Catalog.ListImages)
	images.Post("", auth.RequireCSRF, h.Catalog.CreateBuiltInImage)
	images.Get("/:image_id", h.Catalog.GetImage)
	images.Delete("/:image_id", auth.RequireCSRF, h.Catalog.DeleteImage)

	engines := admin.Group("/engines")
	engines.Get("", h.Catalog.ListEngines)
	engines.Post("", auth.RequireCSRF, h.Catalog.CreateEngine)
	engines.Get("/:engine_id", h.Catalog.GetEngine)
	engines.Delete("/:engine_id", auth.RequireCSRF, h.Catalog.DeleteEngine)

	langs := admin.Group("/langs")
	langs.Get("", h.Catalog.ListLangs)
	langs.Post("", auth.RequireCSRF, h.Catalog.CreateLang)
	langs.Get("/:lang_id", h.Catalog.GetLang)
	langs.Delete("/:lang_id", auth.RequireCSRF, h.Catalog.DeleteLang)

	types := admin.Group("/integration_types")
	types.Get("", h.Catalog.ListIntegrationTypes)
	types.Get("/:integration_type_id", h.Catalog.GetIntegrationType)

	pools := admin.Group("/pools")
	pools.Get("", h.Pools.ListGlobal)
	pools.Post("", auth.RequireCSRF, h.Pools.CreateGlobal)
	pools.Get("/:pool_id", h.Pools.Get)
	pools.Delete("/:pool_id", auth.RequireCSRF, h.Pools.Remove)

	adminUsers := admin.Group("/users")
	adminUsers.Get("", h.Users.List)
	adminUsers.Post("", auth.RequireCSRF, h.Users.Create)
}
