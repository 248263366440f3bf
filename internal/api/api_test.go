package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduexcel/icfesgen/internal/llm"
	"github.com/eduexcel/icfesgen/internal/questiongen"
)

const mathBody = `{"area":"matematicas","subtema":"Porcentajes y tasas (aumento, descuento, interés simple)","estilo_kolb":"convergente"}`

func itemReply(tag string) string {
	words := make([]string, 0, 230)
	for i := range 210 {
		words = append(words, fmt.Sprintf("palabra%s%d", tag, i))
	}
	b, _ := json.Marshal(map[string]any{
		"pregunta":           strings.Join(words, " ") + ".",
		"opciones":           map[string]string{"A": "10%", "B": "20%", "C": "25%", "D": "30%"},
		"respuesta_correcta": "C",
		"explicacion":        "Correcta (C). El cambio relativo es 25%.",
	})
	return string(b)
}

func newTestServer(t *testing.T, responses ...llm.MockResponse) (*httptest.Server, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	gw := llm.NewGateway(mock, llm.GatewayConfig{SeedRandomize: true}, nil)
	strict := questiongen.NewStrict(gw, questiongen.DefaultConfig(), rand.New(rand.NewPCG(1, 1)), nil)
	batch := questiongen.NewBatch(gw, "", questiongen.DefaultConfig(), nil, nil)
	srv := httptest.NewServer(NewServer(Options{
		Strict:  strict,
		Batch:   batch,
		Model:   "mock",
		Version: "test",
	}).Handler())
	t.Cleanup(srv.Close)
	return srv, mock
}

func post(t *testing.T, url, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func get(t *testing.T, url string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestRootAndHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, out := get(t, srv.URL+"/")
	assert.Equal(t, serviceName, out["nombre"])
	assert.Equal(t, "mock", out["modelo"])
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	_, out = get(t, srv.URL+"/health")
	assert.Equal(t, true, out["ok"])
	assert.Equal(t, true, out["strict_ready"])
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv, _ := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(requestIDHeader))
}

func TestCatalog(t *testing.T) {
	srv, _ := newTestServer(t)
	_, out := get(t, srv.URL+"/icfes/catalogo")
	cat := out["catalogo"].(map[string]any)
	assert.Len(t, cat["areas"], 5)
	assert.Len(t, cat["estilos_kolb"], 4)

	_, out = get(t, srv.URL+"/icfes/doc_justificacion")
	assert.Equal(t, "markdown_confluence", out["formato"])
	assert.NotEmpty(t, out["documentacion"])
}

func TestValidate(t *testing.T) {
	srv, mock := newTestServer(t)

	status, out := post(t, srv.URL+"/icfes/validar", mathBody)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["ok"])
	norm := out["normalized"].(map[string]any)
	assert.Equal(t, "Matemáticas", norm["area"])
	assert.Equal(t, "Convergente", norm["estilo_kolb"])
	assert.EqualValues(t, 200, norm["longitud_min"])

	_, out = post(t, srv.URL+"/icfes/validar", `{"area":"Astrologia","subtema":"Horóscopos diarios","longitud_min":400,"longitud_max":300}`)
	assert.Equal(t, false, out["ok"])
	assert.GreaterOrEqual(t, len(out["errors"].([]any)), 2, "all errors reported at once")
	assert.NotNil(t, out["suggestions"])
	assert.Zero(t, mock.CallCount(), "validation never calls the model")
}

func TestGenerate(t *testing.T) {
	srv, _ := newTestServer(t, llm.MockText(itemReply("x"), 300, 250))

	status, out := post(t, srv.URL+"/icfes/generar", mathBody)
	require.Equal(t, http.StatusOK, status, out)
	assert.Equal(t, true, out["ok"])

	it := out["item"].(map[string]any)
	opts := it["opciones"].(map[string]any)
	assert.Len(t, opts, 4)
	correct := it["respuesta_correcta"].(string)
	assert.Equal(t, "25%", opts[correct])

	tokens := out["tokens"].(map[string]any)
	assert.EqualValues(t, 550, tokens["total_tokens"])
}

func TestGenerate_Failures(t *testing.T) {
	srv, _ := newTestServer(t, llm.MockText(`{"pregunta": "x", "opciones": [`, 5, 5))

	status, out := post(t, srv.URL+"/icfes/generar", mathBody)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, false, out["ok"])
	errs := out["errors"].([]any)
	require.Len(t, errs, 1)
	assert.EqualValues(t, 0, errs[0].(map[string]any)["index"])

	status, out = post(t, srv.URL+"/icfes/generar", `{"area":"Matemáticas"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, false, out["ok"])

	status, _ = post(t, srv.URL+"/icfes/generar", `{not json`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestGenerate_NoCredential(t *testing.T) {
	srv := httptest.NewServer(NewServer(Options{Model: "gpt-4o"}).Handler())
	defer srv.Close()

	status, out := post(t, srv.URL+"/icfes/generar", mathBody)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, false, out["ok"])
}

func TestGeneratePack(t *testing.T) {
	srv, _ := newTestServer(t,
		llm.MockText(itemReply("a"), 100, 100),
		llm.MockText(itemReply("b"), 100, 100),
	)

	status, out := post(t, srv.URL+"/icfes/generar_pack?cantidad=2", mathBody)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["ok"])
	assert.EqualValues(t, 2, out["requested"])
	assert.EqualValues(t, 2, out["generated"])
	assert.Len(t, out["items"], 2)
	tokens := out["tokens"].(map[string]any)
	assert.EqualValues(t, 400, tokens["total_tokens"])
	assert.EqualValues(t, 200, tokens["average_per_item"])
}

func TestGeneratePack_Duplicates(t *testing.T) {
	same := itemReply("same")
	srv, _ := newTestServer(t,
		llm.MockText(same, 10, 10),
		llm.MockText(same, 10, 10),
		llm.MockText(same, 10, 10),
	)

	_, out := post(t, srv.URL+"/icfes/generar_pack?cantidad=2", mathBody)
	assert.Equal(t, false, out["ok"])
	assert.EqualValues(t, 1, out["generated"])
	errs := out["errors"].([]any)
	require.Len(t, errs, 1)
	assert.EqualValues(t, 2, errs[0].(map[string]any)["attempts"])
	assert.EqualValues(t, 1, errs[0].(map[string]any)["index"])
}

func TestGeneratePack_BadCount(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, q := range []string{"0", "101", "muchas"} {
		status, out := post(t, srv.URL+"/icfes/generar_pack?cantidad="+q, mathBody)
		assert.Equal(t, http.StatusBadRequest, status, q)
		assert.Equal(t, false, out["ok"], q)
	}
}

func TestRaw(t *testing.T) {
	srv, _ := newTestServer(t,
		llm.MockText("no es json", 3, 4),
		llm.MockText(`{"pregunta": "ok"}`, 5, 6),
	)
	_, out := post(t, srv.URL+"/debug/raw", mathBody)
	assert.Equal(t, "no es json", out["raw1"])
	assert.Equal(t, `{"pregunta": "ok"}`, out["raw2"])
	assert.EqualValues(t, 18, out["tokens_total"].(map[string]any)["total_tokens"])
}

func TestBatch(t *testing.T) {
	reply := `{"preguntas":[{"pregunta":"¿Cuánto es el 10% de 200?","opciones":{"A":"10","B":"20","C":"30","D":"40"},"respuesta_correcta":"B","explicacion":"200 por 0,1."}]}`
	srv, _ := newTestServer(t, llm.MockText(reply, 50, 50))

	_, out := post(t, srv.URL+"/ia/preguntas", `{"area":"Matemáticas","subtema":"Porcentajes","cantidad":1}`)
	assert.Equal(t, true, out["ok"])
	assert.Equal(t, true, out["enabled"])
	assert.Empty(t, out["fallback_reason"])

	mobile := out["mobile"].([]any)[0].(map[string]any)
	assert.Nil(t, mobile["id_pregunta"])
	assert.Equal(t, "¿Cuánto es el 10% de 200?", mobile["enunciado"])
	assert.NotContains(t, mobile, "respuesta_correcta")

	storage := out["storage"].([]any)[0].(map[string]any)
	assert.Equal(t, "B", storage["respuesta_correcta"])
}

func TestBatch_DisabledAndInvalid(t *testing.T) {
	srv := httptest.NewServer(NewServer(Options{Model: "gpt-4o"}).Handler())
	defer srv.Close()

	_, out := post(t, srv.URL+"/ia/preguntas", `{"area":"Matemáticas","subtema":"Porcentajes","cantidad":2}`)
	assert.Equal(t, true, out["ok"])
	assert.Equal(t, false, out["enabled"])
	assert.Equal(t, msgDisabled, out["fallback_reason"])
	assert.Len(t, out["preguntas"], 2)

	status, _ := post(t, srv.URL+"/ia/preguntas", `{"area":"Matemáticas","cantidad":500}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}
