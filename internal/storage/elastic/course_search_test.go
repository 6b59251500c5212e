package elastic

import (
	"TUReviews/internal/models"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeCluster(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func searchClauses(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	should := body["query"].(map[string]any)["bool"].(map[string]any)["should"].([]any)
	out := map[string]any{}
	for _, clause := range should {
		for field, v := range clause.(map[string]any)["wildcard"].(map[string]any) {
			out[field] = v
		}
	}
	return out
}

func TestSearch(t *testing.T) {
	var body map[string]any
	client := fakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/courses/_search"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"3"},{"_id":"not-a-number"},{"_id":"1"}]}}`))
	})

	ids, err := NewCourseSearchRepository(client, "courses").Search(context.Background(), "Calc", 0)

	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, ids)
	assert.EqualValues(t, 50, body["size"])

	clauses := searchClauses(t, body)
	require.Len(t, clauses, 3)
	for _, field := range []string{"name", "code", "professor"} {
		assert.Equal(t, map[string]any{"value": "*calc*", "case_insensitive": true}, clauses[field], field)
	}
	assert.NotContains(t, clauses, "faculty")
}

func TestSearchPatterns(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"thai with marks", "คณิต", "*คณิต*"},
		{"single character", "M", "*m*"},
		{"long token", "introductiontoprogramming", "*introductiontoprogramming*"},
		{"wildcards escaped", `a*b?c\`, `*a\*b\?c\\*`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			client := fakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"2"}]}}`))
			})

			ids, err := NewCourseSearchRepository(client, "courses").Search(context.Background(), tt.query, 10)

			require.NoError(t, err)
			assert.Equal(t, []int64{2}, ids)
			name := searchClauses(t, body)["name"].(map[string]any)
			assert.Equal(t, tt.want, name["value"])
		})
	}
}

func TestSearchError(t *testing.T) {
	client := fakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"parsing_exception"}`))
	})

	_, err := NewCourseSearchRepository(client, "courses").Search(context.Background(), "calc", 10)
	assert.Error(t, err)
}

func TestIndex(t *testing.T) {
	var doc courseDoc
	client := fakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/courses/_doc/7", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	err := NewCourseSearchRepository(client, "courses").Index(context.Background(), models.Course{
		ID: 7, Name: "แคลคูลัส 1", Code: "MA111", Faculty: "Science", Professor: "Dr. Somchai",
	})

	require.NoError(t, err)
	assert.Equal(t, courseDoc{Name: "แคลคูลัส 1", Code: "MA111", Professor: "Dr. Somchai"}, doc)
}

func TestCreateIndexSkipsExisting(t *testing.T) {
	calls := 0
	client := fakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodHead, r.Method)
	})

	require.NoError(t, NewCourseSearchRepository(client, "courses").CreateIndexIfNotExist(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestCreateIndex(t *testing.T) {
	var created bool
	client := fakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			created = true
			var mapping map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&mapping))
			props := mapping["mappings"].(map[string]any)["properties"].(map[string]any)
			assert.Len(t, props, 3)
			assert.Equal(t, "keyword", props["name"].(map[string]any)["type"])
			_, _ = w.Write([]byte(`{"acknowledged":true}`))
		}
	})

	require.NoError(t, NewCourseSearchRepository(client, "courses").CreateIndexIfNotExist(context.Background()))
	assert.True(t, created)
}
