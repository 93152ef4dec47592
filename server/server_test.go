package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	srv := httptest.NewServer(NewRouter(NewHandler(logrus.NewEntry(logger)), nil))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

const regionResult = `{
	"columns": [{"name": "region", "type": "String"}, {"name": "sales", "type": "Decimal"}],
	"rows": [{"region": "A", "sales": 10}, {"region": "A", "sales": 5}, {"region": "B", "sales": 20}]
}`

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestGuess(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/api/chart/guess", `{"result":`+regionResult+`}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out guessResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Found)
	assert.EqualValues(t, "bar", out.ChartType)
}

func TestSpecDonut(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/api/chart/spec", `{"config":{"chart_type":"donut"},"result":`+regionResult+`}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		ChartType string `json:"chart_type"`
		Spec      struct {
			Dataset struct {
				Source [][]any `json:"source"`
			} `json:"dataset"`
		} `json:"spec"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "donut", out.ChartType)
	assert.Equal(t, [][]any{{"B", 20.0}, {"A", 15.0}}, out.Spec.Dataset.Source)
}

func TestSpecLegacyConfig(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"config": {"chart_type": "bar", "x_axis": {"column_name": "region", "data_type": "String"}, "y_axis": [{"measure_name": "sales"}]},
		"result": ` + regionResult + `
	}`
	resp := post(t, srv, "/api/chart/spec", body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	series := out["spec"].(map[string]any)["series"].([]any)
	assert.Len(t, series, 1)
}

func TestSpecErrors(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/api/chart/spec", `{"config":{"chart_type":"table"},"result":`+regionResult+`}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = post(t, srv, "/api/chart/spec", `{"config":{"chart_type":"line"},"result":`+regionResult+`}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = post(t, srv, "/api/chart/spec", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPreview(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/api/chart/preview", `{"config":{"chart_type":"donut"},"result":`+regionResult+`}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestDrillDown(t *testing.T) {
	srv := newTestServer(t)
	body := `{
		"query": {"name": "q1", "auto_execute": true, "operations": [
			{"type": "source", "table": "orders"},
			{"type": "summarize", "summarize": {"measures": [{"measure_name": "sales"}], "dimensions": [{"column_name": "region"}]}}
		]},
		"result": ` + regionResult + `,
		"row_index": 2,
		"column": "sales"
	}`

	resp := post(t, srv, "/api/chart/drilldown", body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Query struct {
			AutoExecute bool `json:"auto_execute"`
			Operations  []struct {
				Type        string `json:"type"`
				FilterGroup *struct {
					Filters []struct {
						Operator string `json:"operator"`
						Value    any    `json:"value"`
					} `json:"filters"`
				} `json:"filter_group"`
			} `json:"operations"`
		} `json:"query"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Query.AutoExecute)
	require.Len(t, out.Query.Operations, 2)
	assert.Equal(t, "filter_group", out.Query.Operations[1].Type)
	assert.Equal(t, "B", out.Query.Operations[1].FilterGroup.Filters[0].Value)
}

func TestDrillDownOnDimension(t *testing.T) {
	srv := newTestServer(t)
	body := func(column string) string {
		return `{"result":` + regionResult + `,"row_index":0,"column":"` + column + `"}`
	}

	resp := post(t, srv, "/api/chart/drilldown", body("region"))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = post(t, srv, "/api/chart/drilldown", body("ghost"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDrillDownNeedsRow(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/api/chart/drilldown", `{"result":`+regionResult+`,"column":"sales"}`)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, errMissingRow.Error(), out.Error)

	resp = post(t, srv, "/api/chart/drilldown", `{"result":`+regionResult+`,"row":{"region":"B","sales":20},"column":"sales"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDiscover(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/discover?snake_case=true", "text/csv", strings.NewReader("Order Region,Total Sales\nEU,10.5\nUS,3\n"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Columns []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"columns"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Columns, 2)
	assert.Equal(t, "total_sales", out.Columns[1].Name)
	assert.Equal(t, "Decimal", out.Columns[1].Type)
}
