package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"kada-admin/internal/adapters/http/handlers"
	"kada-admin/internal/adapters/http/middleware"
	"kada-admin/internal/adapters/http/routes"
	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/adapters/storage"
	"kada-admin/internal/config"
	"kada-admin/internal/core/domain"
	"kada-admin/internal/core/services"
	"kada-admin/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

const maxUpload = 64 * 1024

type page struct {
	Success bool   `json:"success"`
	View    string `json:"view"`
	Flash   struct {
		Success string `json:"success"`
		Error   string `json:"error"`
	} `json:"flash"`
	Data json.RawMessage `json:"data"`
}

// client drives the app and carries cookies between requests
type client struct {
	t       *testing.T
	app     *fiber.App
	fx      *testutil.Fixtures
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()
	db := testutil.SetupTestDB(t)

	files, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	cfg := &config.Config{
		AppMode:  "dev",
		Database: config.DatabaseConfig{Driver: "sqlite"},
		JWT:      config.JWTConfig{Secret: "test-secret", AccessTokenMins: 60},
		Cookie:   config.CookieConfig{SameSite: "Lax"},
		Upload:   config.UploadConfig{MaxBytes: maxUpload},
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    4 * maxUpload,
	})
	routes.Setup(app, routes.Deps{
		DB:       db,
		Config:   cfg,
		Files:    files,
		Sessions: session.New(),
		Log:      zap.NewNop(),
	})

	return &client{t: t, app: app, fx: testutil.NewFixtures(t, db), cookies: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) *http.Response {
	c.t.Helper()
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	resp, err := c.app.Test(req, -1)
	if err != nil {
		c.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	for _, ck := range resp.Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return resp
}

func (c *client) get(path string) *http.Response {
	c.t.Helper()
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) post(path string, form url.Values) *http.Response {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return c.do(req)
}

func (c *client) page(path string) page {
	c.t.Helper()
	resp := c.get(path)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.t.Fatalf("GET %s: status %d", path, resp.StatusCode)
	}
	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		c.t.Fatalf("GET %s: decode: %v", path, err)
	}
	return p
}

// login signs in a fresh fixture admin and returns it
func (c *client) login(username string) *models.Admin {
	c.t.Helper()
	admin := c.fx.CreateAdmin(testutil.TestContext(c.t), username)
	resp := c.post("/auth/login", url.Values{"username": {username}, "password": {testutil.DefaultPassword}})
	expectRedirect(c.t, resp, "/admin")
	if _, ok := c.cookies[handlers.AccessTokenCookie]; !ok {
		c.t.Fatal("login did not set the access token cookie")
	}
	return admin
}

func expectRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if got := resp.Header.Get(fiber.HeaderLocation); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func TestAdminRoutesRequireLogin(t *testing.T) {
	c := newClient(t)

	for _, path := range []string{"/admin", "/admin/member_list", "/admin/annual-reports", "/admin/export/pdf"} {
		expectRedirect(t, c.get(path), middleware.LoginPath)
	}

	p := c.page("/auth/login")
	if p.View != "auth/login" {
		t.Errorf("view = %q, want auth/login", p.View)
	}
	if p.Flash.Error != handlers.MsgLoginRequired {
		t.Errorf("flash error = %q, want %q", p.Flash.Error, handlers.MsgLoginRequired)
	}

	// The flash is shown once
	if again := c.page("/auth/login"); again.Flash.Error != "" {
		t.Errorf("flash shown twice: %q", again.Flash.Error)
	}
}

func TestAdminMutationWithoutLoginChangesNothing(t *testing.T) {
	c := newClient(t)
	ctx := testutil.TestContext(t)
	m := c.fx.CreateMember(ctx, "Aminah binti Ali", domain.StatusPending)

	expectRedirect(t, c.post(fmt.Sprintf("/admin/members/%d/approve", m.ID), nil), middleware.LoginPath)

	if got := c.fx.Member(ctx, m.ID); got.Status != domain.StatusPending {
		t.Errorf("status = %s, want Pending", got.Status)
	}
	if n := c.fx.Count(ctx, &models.MemberTransition{}); n != 0 {
		t.Errorf("transitions = %d, want 0", n)
	}
}

func TestDeletedAdminLosesAccess(t *testing.T) {
	c := newClient(t)
	ctx := testutil.TestContext(t)
	gone := c.login("hantu")
	c.fx.CreateAdmin(ctx, "kekal")
	m := c.fx.CreateMember(ctx, "Aminah binti Ali", domain.StatusPending)

	if err := c.fx.DB().WithContext(ctx).Delete(&models.Admin{}, gone.ID).Error; err != nil {
		t.Fatalf("delete admin: %v", err)
	}

	// The cookie is still a validly signed token
	resp := c.post(fmt.Sprintf("/admin/members/%d/approve", m.ID), nil)
	expectRedirect(t, resp, middleware.LoginPath)

	if got := c.fx.Member(ctx, m.ID); got.Status != domain.StatusPending || got.Version != m.Version {
		t.Errorf("member changed: status %s version %d", got.Status, got.Version)
	}
	if n := c.fx.Count(ctx, &models.MemberTransition{}); n != 0 {
		t.Errorf("transitions = %d, want 0", n)
	}
	if p := c.page("/auth/login"); p.Flash.Error != handlers.MsgLoginRequired {
		t.Errorf("flash error = %q, want %q", p.Flash.Error, handlers.MsgLoginRequired)
	}
}

func TestLoginAndLogout(t *testing.T) {
	c := newClient(t)
	c.fx.CreateAdmin(testutil.TestContext(t), "pentadbir")

	resp := c.post("/auth/login", url.Values{"username": {"pentadbir"}, "password": {"salah"}})
	expectRedirect(t, resp, "/auth/login")
	if p := c.page("/auth/login"); p.Flash.Error != handlers.MsgInvalidLogin {
		t.Errorf("flash error = %q, want %q", p.Flash.Error, handlers.MsgInvalidLogin)
	}

	resp = c.post("/auth/login", url.Values{"username": {"pentadbir"}, "password": {testutil.DefaultPassword}})
	expectRedirect(t, resp, "/admin")

	p := c.page("/admin")
	if p.View != "admin/index" {
		t.Errorf("view = %q, want admin/index", p.View)
	}
	if p.Flash.Success != handlers.MsgLoggedIn {
		t.Errorf("flash success = %q, want %q", p.Flash.Success, handlers.MsgLoggedIn)
	}

	expectRedirect(t, c.post("/auth/logout", nil), "/auth/login")
	expectRedirect(t, c.get("/admin"), middleware.LoginPath)
}

func TestLoginThrottle(t *testing.T) {
	c := newClient(t)
	c.fx.CreateAdmin(testutil.TestContext(t), "pentadbir")

	for i := 0; i < 5; i++ {
		resp := c.post("/auth/login", url.Values{"username": {"pentadbir"}, "password": {"salah"}})
		expectRedirect(t, resp, "/auth/login")
	}

	// Even the right password is turned away once the budget is spent
	resp := c.post("/auth/login", url.Values{"username": {"pentadbir"}, "password": {testutil.DefaultPassword}})
	expectRedirect(t, resp, middleware.LoginPath)
	if _, ok := c.cookies[handlers.AccessTokenCookie]; ok {
		t.Error("throttled login set the access token cookie")
	}
	if p := c.page("/auth/login"); p.Flash.Error != middleware.MsgTooManyLogins {
		t.Errorf("flash error = %q, want %q", p.Flash.Error, middleware.MsgTooManyLogins)
	}
}

func TestApproveRedirectsToMemberList(t *testing.T) {
	c := newClient(t)
	ctx := testutil.TestContext(t)
	c.login("pentadbir")
	m := c.fx.CreateMember(ctx, "Aminah binti Ali", domain.StatusPending)

	resp := c.post(fmt.Sprintf("/admin/members/%d/approve", m.ID), nil)
	expectRedirect(t, resp, "/admin/member_list")

	p := c.page("/admin/member_list")
	if p.Flash.Success != services.MsgApproved {
		t.Errorf("flash success = %q, want %q", p.Flash.Success, services.MsgApproved)
	}
	if got := c.fx.Member(ctx, m.ID); got.Status != domain.StatusActive {
		t.Errorf("status = %s, want Active", got.Status)
	}
}

func TestMigrateRejectedMember(t *testing.T) {
	c := newClient(t)
	ctx := testutil.TestContext(t)
	c.login("pentadbir")
	m := c.fx.CreateMemberWithID(ctx, 42, "Rosli bin Hamid", domain.StatusRejected)

	expectRedirect(t, c.post("/admin/members/42/approve", nil), "/admin/member_list")

	p := c.page("/admin/member_list")
	if p.Flash.Success != services.MsgMigrated {
		t.Errorf("flash success = %q, want %q", p.Flash.Success, services.MsgMigrated)
	}
	if got := c.fx.Member(ctx, m.ID); got.Status != domain.StatusActive {
		t.Errorf("status = %s, want Active", got.Status)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	c := newClient(t)
	ctx := testutil.TestContext(t)
	c.login("pentadbir")
	m := c.fx.CreateMemberWithID(ctx, 7, "Siti binti Omar", domain.StatusActive)

	resp := c.post("/admin/members/status", url.Values{"id": {"7"}, "status": {"bogus"}})
	expectRedirect(t, resp, "/admin")

	p := c.page("/admin")
	if p.Flash.Error != handlers.MsgInvalidStatus {
		t.Errorf("flash error = %q, want %q", p.Flash.Error, handlers.MsgInvalidStatus)
	}
	got := c.fx.Member(ctx, m.ID)
	if got.Status != domain.StatusActive || got.Version != m.Version {
		t.Errorf("member changed: status %s version %d", got.Status, got.Version)
	}
}

func TestRejectTwiceIsRefused(t *testing.T) {
	c := newClient(t)
	ctx := testutil.TestContext(t)
	c.login("pentadbir")
	m := c.fx.CreateMember(ctx, "Hafiz bin Yusof", domain.StatusPending)
	path := fmt.Sprintf("/admin/members/%d/reject", m.ID)

	expectRedirect(t, c.post(path, nil), "/admin")
	if p := c.page("/admin"); p.Flash.Success != services.MsgRejected {
		t.Errorf("first reject flash = %q", p.Flash.Success)
	}

	expectRedirect(t, c.post(path, nil), "/admin")
	if p := c.page("/admin"); p.Flash.Error != handlers.MsgInvalidTransition {
		t.Errorf("second reject flash = %q, want %q", p.Flash.Error, handlers.MsgInvalidTransition)
	}
}

func TestResignationFlow(t *testing.T) {
	c := newClient(t)
	ctx := testutil.TestContext(t)
	c.login("pentadbir")
	m := c.fx.CreateMember(ctx, "Zainab binti Musa", domain.StatusActive)

	// Approving before any request is refused
	resp := c.post("/admin/resignations/approve", url.Values{"member_id": {fmt.Sprint(m.ID)}})
	expectRedirect(t, resp, "/admin/resignations")
	if p := c.page("/admin/resignations"); p.Flash.Error != handlers.MsgResignationFailed {
		t.Errorf("flash error = %q, want %q", p.Flash.Error, handlers.MsgResignationFailed)
	}

	resp = c.post(fmt.Sprintf("/admin/members/%d/resignation", m.ID), url.Values{"reason": {"Bersara"}})
	expectRedirect(t, resp, "/admin/resignations")
	p := c.page("/admin/resignations")
	if p.Flash.Success != services.MsgResignationRecorded {
		t.Errorf("flash success = %q", p.Flash.Success)
	}
	if !strings.Contains(string(p.Data), "Bersara") {
		t.Errorf("pending list does not show the request: %s", p.Data)
	}

	resp = c.post("/admin/resignations/approve", url.Values{"member_id": {fmt.Sprint(m.ID)}})
	expectRedirect(t, resp, "/admin/resignations")
	if got := c.fx.Member(ctx, m.ID); got.Status != domain.StatusResigned {
		t.Errorf("status = %s, want Resigned", got.Status)
	}

	h := c.page(fmt.Sprintf("/admin/members/%d/history", m.ID))
	if h.View != "admin/member_history" {
		t.Errorf("view = %q", h.View)
	}
}

func multipartUpload(t *testing.T, year, title, filename string, body []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("year", year)
	_ = w.WriteField("title", title)
	fw, err := w.CreateFormFile("report_file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(body); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/annual-reports", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func pdfBytes(size int) []byte {
	b := []byte("%PDF-1.7\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	for len(b) < size {
		b = append(b, "stream data line\n"...)
	}
	return b[:size]
}

func TestUploadRejectsNonPDF(t *testing.T) {
	c := newClient(t)
	ctx := testutil.TestContext(t)
	c.login("pentadbir")

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 600)...)
	resp := c.do(multipartUpload(t, "2024", "Laporan Tahunan 2024", "laporan.pdf", png))
	expectRedirect(t, resp, "/admin")

	p := c.page("/admin")
	if p.Flash.Error != services.MsgNotPDF {
		t.Errorf("flash error = %q, want %q", p.Flash.Error, services.MsgNotPDF)
	}
	if n := c.fx.Count(ctx, &models.AnnualReport{}); n != 0 {
		t.Errorf("reports = %d, want 0", n)
	}
}

func TestUploadDownloadDelete(t *testing.T) {
	c := newClient(t)
	ctx := testutil.TestContext(t)
	c.login("pentadbir")

	content := pdfBytes(20 * 1024)
	expectRedirect(t, c.do(multipartUpload(t, "2023", "Laporan Tahunan 2023", "laporan.pdf", content)), "/admin")
	if p := c.page("/admin"); p.Flash.Success != services.MsgReportUploaded {
		t.Fatalf("flash = %+v", p.Flash)
	}

	var report models.AnnualReport
	if err := c.fx.DB().WithContext(ctx).First(&report).Error; err != nil {
		t.Fatalf("load report: %v", err)
	}

	resp := c.get(fmt.Sprintf("/admin/annual-reports/%d/download", report.ID))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("download status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get(fiber.HeaderContentType); ct != services.PDFContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	got, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("downloaded %d bytes, differs from the %d uploaded", len(got), len(content))
	}

	expectRedirect(t, c.post(fmt.Sprintf("/admin/annual-reports/%d/delete", report.ID), nil), "/admin")
	if n := c.fx.Count(ctx, &models.AnnualReport{}); n != 0 {
		t.Errorf("reports after delete = %d", n)
	}

	resp = c.get(fmt.Sprintf("/admin/annual-reports/%d/download", report.ID))
	expectRedirect(t, resp, "/admin/annual-reports")
	if p := c.page("/admin/annual-reports"); p.Flash.Error != handlers.MsgNotFound {
		t.Errorf("flash error = %q, want %q", p.Flash.Error, handlers.MsgNotFound)
	}
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	c := newClient(t)
	ctx := testutil.TestContext(t)
	me := c.login("pentadbir")
	c.fx.CreateAdmin(ctx, "kedua")

	expectRedirect(t, c.post(fmt.Sprintf("/admin/admins/%d/delete", me.ID), nil), "/admin")
	if p := c.page("/admin"); p.Flash.Error != handlers.MsgSelfDeletion {
		t.Errorf("flash error = %q, want %q", p.Flash.Error, handlers.MsgSelfDeletion)
	}
	if n := c.fx.Count(ctx, &models.Admin{}); n != 2 {
		t.Errorf("admins = %d, want 2", n)
	}
}

func TestCreateAdminValidationReturnsToForm(t *testing.T) {
	c := newClient(t)
	ctx := testutil.TestContext(t)
	c.login("pentadbir")

	form := url.Values{
		"username":         {"baharu"},
		"email":            {"baharu@kada.gov.my"},
		"password":         {"rahsia123"},
		"confirm_password": {"lain12345"},
	}
	expectRedirect(t, c.post("/admin/admins", form), "/admin/add-admin")
	if p := c.page("/admin/add-admin"); p.Flash.Error != services.MsgPasswordMismatch {
		t.Errorf("flash error = %q, want %q", p.Flash.Error, services.MsgPasswordMismatch)
	}

	form.Set("confirm_password", "rahsia123")
	expectRedirect(t, c.post("/admin/admins", form), "/admin")
	if n := c.fx.Count(ctx, &models.Admin{}); n != 2 {
		t.Errorf("admins = %d, want 2", n)
	}
}

func TestUpdateInterestRates(t *testing.T) {
	c := newClient(t)
	ctx := testutil.TestContext(t)
	c.login("pentadbir")

	form := url.Values{"savings_rate": {"abc"}, "loan_rate": {"4.5"}}
	expectRedirect(t, c.post("/admin/interest-rates", form), "/admin")
	if p := c.page("/admin"); p.Flash.Error != services.MsgInvalidRate {
		t.Errorf("flash error = %q, want %q", p.Flash.Error, services.MsgInvalidRate)
	}

	form.Set("savings_rate", "2.75")
	expectRedirect(t, c.post("/admin/interest-rates", form), "/admin")

	var rate models.InterestRate
	if err := c.fx.DB().WithContext(ctx).First(&rate).Error; err != nil {
		t.Fatalf("load rate: %v", err)
	}
	if rate.SavingsRate != 2.75 || rate.LoanRate != 4.5 {
		t.Errorf("rate = %+v", rate)
	}
}

func TestExportExcel(t *testing.T) {
	c := newClient(t)
	c.login("pentadbir")
	c.fx.CreateMember(testutil.TestContext(t), "Aminah binti Ali", domain.StatusActive)

	resp := c.get("/admin/export/excel")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	cd := resp.Header.Get(fiber.HeaderContentDisposition)
	if !strings.HasPrefix(cd, `attachment; filename="senarai_ahli_`) || !strings.HasSuffix(cd, `.xlsx"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if resp.Header.Get(fiber.HeaderCacheControl) == "" {
		t.Error("admin download is cacheable")
	}
}

func TestHealthAndMetrics(t *testing.T) {
	c := newClient(t)

	resp := c.get("/health")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}

	resp = c.get("/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("metrics output lacks runtime collectors")
	}
}

func TestUnknownRouteAnswersJSON(t *testing.T) {
	c := newClient(t)

	resp := c.get("/tiada")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || !strings.Contains(body.Error, "/tiada") {
		t.Errorf("body = %+v", body)
	}
}
