package api

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/soaringjerry/Sondage/internal/kv"
	"github.com/soaringjerry/Sondage/internal/middleware"
	"github.com/soaringjerry/Sondage/internal/services"
)

// Deps are the collaborators App is built from.
type Deps struct {
	Store    kv.Store
	Admins   services.AllowList
	Seed     []services.Section
	Tokens   *middleware.Tokens
	Location *time.Location
	Logger   *zap.Logger
}

// App wires the survey stores to HTTP.
type App struct {
	gate      *services.IdentityGate
	survey    *services.SurveyStore
	responses *services.ResponseStore
	audit     *services.AuditLog
	sessions  *sessionRegistry

	tokens *middleware.Tokens
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewApp hydrates every store from d.Store.
func NewApp(ctx context.Context, d Deps) (*App, error) {
	if d.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	if d.Tokens == nil {
		return nil, fmt.Errorf("token signer required")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	a := &App{
		gate:      services.NewIdentityGate(d.Store, d.Admins),
		survey:    services.NewSurveyStore(d.Store, d.Seed),
		responses: services.NewResponseStore(d.Store),
		audit:     services.NewAuditLog(d.Store),
		sessions:  newSessionRegistry(),
		tokens:    d.Tokens,
		loc:       d.Location,
		logger:    d.Logger,
		now:       time.Now,
	}
	if err := a.gate.Init(ctx); err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}
	if err := a.survey.Init(ctx); err != nil {
		return nil, fmt.Errorf("load survey definition: %w", err)
	}
	if err := a.responses.Init(ctx); err != nil {
		return nil, fmt.Errorf("load responses: %w", err)
	}
	if err := a.audit.Init(ctx); err != nil {
		return nil, fmt.Errorf("load audit log: %w", err)
	}
	return a, nil
}

// Export renders the CSV download and its file name.
func (a *App) Export() (string, []byte, error) {
	data, err := services.ExportCSV(a.survey.Sections(), a.responses.Responses(), a.loc)
	if err != nil {
		return "", nil, err
	}
	return services.ExportFileName(a.now().In(a.loc)), data, nil
}

// active accepts a token only while it names the current identity.
func (a *App) active(c *middleware.Claims) bool {
	cur := a.gate.Current()
	return cur != nil && cur.ID == c.UID
}

func (a *App) record(ctx context.Context, actor, action, target string) {
	if err := a.audit.Record(ctx, actor, action, target, ""); err != nil {
		a.logger.Warn("audit record failed", zap.String("action", action), zap.Error(err))
	}
}
