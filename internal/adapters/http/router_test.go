package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/apurvakhangal/unmasked/internal/config"
	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

func newTestHandler(t *testing.T, cfg config.Config, services Services) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router, err := NewRouter(cfg, services, nil, logger)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}
	return router.Handler()
}

func testConfig() config.Config {
	return config.Config{
		MaxUploadSize:     10 << 20,
		APIRateLimitRPS:   1000,
		APIRateLimitBurst: 1000,
		APIMaxInFlight:    64,
	}
}

// verifierFor returns an auth stub whose Verify accepts exactly one token.
func verifierFor(token string, principal domain.Principal) *authStub {
	return &authStub{
		verifyFn: func(_ context.Context, got string) (domain.Principal, error) {
			if got != token {
				return domain.Principal{}, domain.WrapError(domain.ErrUnauthorized, "verify token", errInvalidToken)
			}
			return principal, nil
		},
	}
}

var errInvalidToken = io.ErrUnexpectedEOF

type authStub struct {
	registerFn func(ctx context.Context, email, password, name string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.User, string, error)
	verifyFn   func(ctx context.Context, token string) (domain.Principal, error)
}

func (s *authStub) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	return s.registerFn(ctx, email, password, name)
}

func (s *authStub) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *authStub) Verify(ctx context.Context, token string) (domain.Principal, error) {
	return s.verifyFn(ctx, token)
}

type profileStub struct {
	getFn    func(ctx context.Context, userID string) (*domain.Profile, error)
	updateFn func(ctx context.Context, userID, name, password, currentPassword string) error
}

func (s *profileStub) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.getFn(ctx, userID)
}

func (s *profileStub) Update(ctx context.Context, userID, name, password, currentPassword string) error {
	return s.updateFn(ctx, userID, name, password, currentPassword)
}

type analysisStub struct {
	submitFn func(ctx context.Context, caller domain.Principal, filename string, body io.Reader) (*domain.Analysis, error)
	getFn    func(ctx context.Context, caller domain.Principal, id string) (*domain.Analysis, error)
	listFn   func(ctx context.Context, caller domain.Principal) ([]domain.Analysis, error)
}

func (s *analysisStub) Submit(ctx context.Context, caller domain.Principal, filename string, body io.Reader) (*domain.Analysis, error) {
	return s.submitFn(ctx, caller, filename, body)
}

func (s *analysisStub) GetByID(ctx context.Context, caller domain.Principal, id string) (*domain.Analysis, error) {
	return s.getFn(ctx, caller, id)
}

func (s *analysisStub) List(ctx context.Context, caller domain.Principal) ([]domain.Analysis, error) {
	return s.listFn(ctx, caller)
}

type reportStub struct {
	createFn func(ctx context.Context, caller domain.Principal, report *domain.Report) (*domain.Report, error)
	listFn   func(ctx context.Context, caller domain.Principal) ([]domain.Report, error)
	renderFn func(ctx context.Context, caller domain.Principal, id string) ([]byte, string, error)
}

func (s *reportStub) Create(ctx context.Context, caller domain.Principal, report *domain.Report) (*domain.Report, error) {
	return s.createFn(ctx, caller, report)
}

func (s *reportStub) List(ctx context.Context, caller domain.Principal) ([]domain.Report, error) {
	return s.listFn(ctx, caller)
}

func (s *reportStub) RenderPDF(ctx context.Context, caller domain.Principal, id string) ([]byte, string, error) {
	return s.renderFn(ctx, caller, id)
}

type newsStub struct {
	fetchFn func(ctx context.Context, apiKey string, query domain.NewsQuery) (*domain.NewsResult, error)
}

func (s *newsStub) Fetch(ctx context.Context, apiKey string, query domain.NewsQuery) (*domain.NewsResult, error) {
	return s.fetchFn(ctx, apiKey, query)
}

type detectorStub struct {
	healthy bool
}

func (s *detectorStub) Predict(context.Context, string, func() (io.ReadCloser, error)) (domain.Verdict, error) {
	return domain.Verdict{}, nil
}

func (s *detectorStub) Healthy(context.Context) bool {
	return s.healthy
}

type adminStub struct {
	exportFn func(ctx context.Context, caller domain.Principal, filter domain.ReportFilter) ([]byte, error)
	logsFn   func(ctx context.Context, caller domain.Principal) ([]domain.AdminLog, error)
}

func (s *adminStub) ListUsers(context.Context, domain.Principal) ([]domain.UserAccount, error) {
	return nil, nil
}

func (s *adminStub) UserDetail(context.Context, domain.Principal, string) (*domain.Profile, []domain.Analysis, []domain.Report, error) {
	return nil, nil, nil, nil
}

func (s *adminStub) ResetUser(context.Context, domain.Principal, string) (domain.ResetCounts, error) {
	return domain.ResetCounts{}, nil
}

func (s *adminStub) DeleteUser(context.Context, domain.Principal, string) error {
	return nil
}

func (s *adminStub) ListReports(context.Context, domain.Principal, domain.ReportFilter) ([]domain.ReportWithUser, domain.ReportStatistics, error) {
	return nil, domain.ReportStatistics{}, nil
}

func (s *adminStub) DeleteReport(context.Context, domain.Principal, string) error {
	return nil
}

func (s *adminStub) ExportReports(ctx context.Context, caller domain.Principal, filter domain.ReportFilter) ([]byte, error) {
	return s.exportFn(ctx, caller, filter)
}

func (s *adminStub) ResetAll(context.Context, domain.Principal) (domain.ResetCounts, error) {
	return domain.ResetCounts{}, nil
}

func (s *adminStub) Logs(ctx context.Context, caller domain.Principal) ([]domain.AdminLog, error) {
	return s.logsFn(ctx, caller)
}
