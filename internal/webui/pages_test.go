package webui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/vitrine/config"
	"github.com/talkincode/vitrine/internal/catalog"
	"github.com/talkincode/vitrine/internal/forms"
	"github.com/talkincode/vitrine/internal/validate"
	"github.com/talkincode/vitrine/internal/view"
	"github.com/talkincode/vitrine/internal/webserver"
)

type testApp struct {
	srv     *webserver.WebServer
	store   *catalog.Store
	backend *catalog.BoltBackend
	cookies []*http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	backend, err := catalog.OpenBolt(filepath.Join(t.TempDir(), "catalog.db"), "catalog", "products")
	require.NoError(t, err)
	store, err := catalog.Open(context.Background(), backend)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := *config.DefaultAppConfig
	cfg.Web.Secret = "test-secret-test-secret-test-secret"
	srv := webserver.NewWebServer(&cfg, store)
	Register(srv)
	return &testApp{srv: srv, store: store, backend: backend}
}

func (a *testApp) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range a.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.srv.Echo().ServeHTTP(rec, req)
	if cs := rec.Result().Cookies(); len(cs) > 0 {
		a.cookies = cs
	}
	return rec
}

func productForm(name, description, price, lead string) url.Values {
	return url.Values{
		"produtoId":        {""},
		"fotoProduto":      {""},
		"nomeProduto":      {name},
		"descricaoProduto": {description},
		"precoProduto":     {price},
		"prazoEntrega":     {lead},
	}
}

func TestIndexShowsDefaultSection(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<section id="cadastro-consumidor" class="active">`)
	assert.Contains(t, body, "Smartphone XYZ (prod1)")
	assert.Equal(t, 3, strings.Count(body, `class="produto-item"`))
}

func TestSubmitProductCreatesAndFlashes(t *testing.T) {
	app := newTestApp(t)
	form := productForm("Fone", "Teste", "10", "3")
	form.Set("disponivelVenda", "true")

	rec := app.do(t, http.MethodPost, "/products", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?section="+view.SectionProduct, rec.Header().Get("Location"))

	list := app.store.List()
	require.Len(t, list, 4)
	added := list[3]
	assert.Regexp(t, `^prod\d+$`, added.ID)
	assert.True(t, added.Available)

	payload, found, err := app.backend.Load(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, string(payload), added.ID)

	page := app.do(t, http.MethodGet, "/?section="+view.SectionProduct, nil)
	assert.Contains(t, page.Body.String(), forms.MsgProductCreated)
	assert.Contains(t, page.Body.String(), view.LabelSave)

	// the banner is shown once
	again := app.do(t, http.MethodGet, "/?section="+view.SectionProduct, nil)
	assert.NotContains(t, again.Body.String(), forms.MsgProductCreated)
}

func TestSubmitProductInvalid(t *testing.T) {
	app := newTestApp(t)
	form := productForm("", "Teste", "0", "abc")
	form.Set("fotoProduto", "not-a-url")

	rec := app.do(t, http.MethodPost, "/products", form)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, forms.MsgFixProduct)
	assert.Contains(t, body, `id="error-fotoProduto">`+validate.MsgInvalidURL)
	assert.Contains(t, body, `id="error-nomeProduto">`+validate.MsgRequired)
	assert.Contains(t, body, `id="error-precoProduto">`+validate.MsgNotPositive)
	assert.Contains(t, body, `id="error-prazoEntrega">`+validate.MsgNotPositive)
	assert.Contains(t, body, ">Teste</textarea>")
	assert.Equal(t, 3, app.store.Len())
}

func TestEditAndUpdateProduct(t *testing.T) {
	app := newTestApp(t)

	edit := app.do(t, http.MethodGet, "/?edit=prod2", nil)
	require.Equal(t, http.StatusOK, edit.Code)
	assert.Contains(t, edit.Body.String(), view.LabelUpdate)
	assert.Contains(t, edit.Body.String(), `<section id="cadastro-produto" class="active">`)

	form := productForm("Fone Bluetooth PRO", "Novo", "420", "4")
	form.Set("produtoId", "prod2")
	rec := app.do(t, http.MethodPost, "/products", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	list := app.store.List()
	require.Len(t, list, 3)
	assert.Equal(t, "prod2", list[1].ID)
	assert.Equal(t, "Fone Bluetooth PRO", list[1].Name)
	assert.False(t, list[1].Available)

	page := app.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, page.Body.String(), forms.MsgProductUpdated)
}

func TestUpdateMissingProduct(t *testing.T) {
	app := newTestApp(t)
	form := productForm("Fone", "Teste", "10", "3")
	form.Set("produtoId", "prod404")
	rec := app.do(t, http.MethodPost, "/products", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 3, app.store.Len())

	page := app.do(t, http.MethodGet, "/?section="+view.SectionProduct, nil)
	assert.Contains(t, page.Body.String(), forms.MsgProductMissing)
	assert.Contains(t, page.Body.String(), "form-feedback error")
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	app := newTestApp(t)

	confirm := app.do(t, http.MethodGet, "/products/prod2/delete", nil)
	require.Equal(t, http.StatusOK, confirm.Code)
	assert.Contains(t, confirm.Body.String(), forms.MsgConfirmDelete("prod2"))

	rec := app.do(t, http.MethodPost, "/products/prod2/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 3, app.store.Len())

	rec = app.do(t, http.MethodPost, "/products/prod2/delete", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	list := app.store.List()
	require.Len(t, list, 2)
	assert.Equal(t, "prod1", list[0].ID)
	assert.Equal(t, "prod3", list[1].ID)

	page := app.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, page.Body.String(), forms.MsgProductDeleted("prod2"))
}

func TestDeleteUnknownIsSilent(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodGet, "/products/prod404/delete", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = app.do(t, http.MethodPost, "/products/prod404/delete", url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	page := app.do(t, http.MethodGet, "/", nil)
	assert.NotContains(t, page.Body.String(), "form-feedback")
}

func TestToggleProduct(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodPost, "/products/prod1/toggle", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	p, _ := app.store.Get("prod1")
	assert.False(t, p.Available)

	page := app.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, page.Body.String(), forms.MsgAvailabilityChanged("prod1"))

	app.do(t, http.MethodPost, "/products/prod1/toggle", url.Values{})
	p, _ = app.store.Get("prod1")
	assert.True(t, p.Available)
}

func TestSubmitConsumer(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodPost, "/consumers", url.Values{
		"nomeConsumidor":     {"Ana"},
		"cpfConsumidor":      {"123"},
		"enderecoConsumidor": {""},
		"telefoneConsumidor": {"(11) 91234-5678"},
		"emailConsumidor":    {"ana@example.com"},
		"senhaConsumidor":    {"segredo-ruim"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="error-cpfConsumidor">`+validate.MsgInvalidCPF)
	assert.Contains(t, body, `id="error-enderecoConsumidor">`+validate.MsgRequired)
	assert.Contains(t, body, `id="error-telefoneConsumidor"></span>`)
	assert.NotContains(t, body, "segredo-ruim")

	rec = app.do(t, http.MethodPost, "/consumers", url.Values{
		"nomeConsumidor":     {"Ana"},
		"cpfConsumidor":      {"12345678909"},
		"enderecoConsumidor": {"Rua A, 1"},
		"telefoneConsumidor": {"(11) 91234-5678"},
		"emailConsumidor":    {"ana@example.com"},
		"senhaConsumidor":    {"segredo"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	page := app.do(t, http.MethodGet, "/?section="+view.SectionConsumer, nil)
	assert.Contains(t, page.Body.String(), forms.MsgConsumerCreated)
}

func TestSubmitSeller(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodPost, "/sellers", url.Values{
		"nomeVendedor":     {"Loja"},
		"cpfVendedor":      {"123.456.789-09"},
		"enderecoVendedor": {"Rua B, 2"},
		"telefoneVendedor": {"1112345678"},
		"emailVendedor":    {"loja@example.com"},
		"senhaVendedor":    {"segredo"},
		"bancoVendedor":    {""},
		"agenciaVendedor":  {"0001"},
		"contaVendedor":    {"123-4"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="error-bancoVendedor">`+validate.MsgRequired)
	assert.Contains(t, rec.Body.String(), `<section id="cadastro-vendedor" class="active">`)
}

func TestListFragmentAndStatic(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodGet, "/products/list", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, strings.Count(rec.Body.String(), `class="produto-item"`))
	assert.NotContains(t, rec.Body.String(), "<html")

	css := app.do(t, http.MethodGet, "/static/style.css", nil)
	require.Equal(t, http.StatusOK, css.Code)
	assert.Contains(t, css.Body.String(), ".produto-item")
}

func TestClearProductForm(t *testing.T) {
	app := newTestApp(t)
	edit := app.do(t, http.MethodGet, "/?edit=prod1", nil)
	assert.Contains(t, edit.Body.String(), `id="nomeProduto" name="nomeProduto" value="Smartphone XYZ"`)
	assert.Contains(t, edit.Body.String(), `href="/?section=cadastro-produto">Clear</a>`)

	cleared := app.do(t, http.MethodGet, "/?section="+view.SectionProduct, nil)
	body := cleared.Body.String()
	assert.Contains(t, body, `id="nomeProduto" name="nomeProduto" value=""`)
	assert.Contains(t, body, `id="produtoId" name="produtoId" value=""`)
	assert.Contains(t, body, view.LabelSave)
	assert.NotContains(t, body, view.LabelUpdate)
}
