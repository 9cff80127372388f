package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/amehta/pressroom/internal/domain"
	"github.com/amehta/pressroom/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getJSON(t *testing.T, url string) *http.Response {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func accessTokenFor(t *testing.T, ts *testutil.TestServer, user *domain.User) string {
	t.Helper()

	session, err := ts.Services.Tokens.IssueSession(context.Background(), user)
	require.NoError(t, err)
	return session.AccessToken
}

type articlePayload struct {
	ArticleID int    `json:"articleId"`
	Hash      string `json:"hash"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Body      string `json:"article_text"`
	Category  string `json:"category"`
	Featured  bool   `json:"featured"`
}

func validCreateRequest(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":        title,
		"summary":      "A short summary",
		"article_text": "The full article text.",
		"image":        "https://example.com/image.jpg",
		"category":     "General",
	}
}

func TestArticleHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	editor, _ := testutil.NewUserBuilder().
		WithUsername("editor").
		WithRole(domain.RoleEditor).
		Build(t, ts.DB.DB)
	editorToken := accessTokenFor(t, ts, editor)

	t.Run("without a token", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/articles"), validCreateRequest("Anonymous"), "")
		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})

	t.Run("with a token but without a publishing role", func(t *testing.T) {
		viewer, _ := testutil.NewUserBuilder().
			WithUsername("viewer").
			WithRole(domain.Role("viewer")).
			Build(t, ts.DB.DB)
		viewerToken := accessTokenFor(t, ts, viewer)

		resp := postJSON(t, ts.APIURL("/articles"), validCreateRequest("Forbidden"), viewerToken)
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Not authorized")
	})

	t.Run("editor can publish", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/articles"), validCreateRequest("First story"), editorToken)
		testutil.AssertStatusCode(t, resp, http.StatusCreated)

		var article articlePayload
		testutil.AssertJSONResponse(t, resp, &article)
		assert.Equal(t, "First story", article.Title)
		assert.Equal(t, 1, article.ArticleID)
		assert.NotEmpty(t, article.Hash)
	})

	t.Run("missing field", func(t *testing.T) {
		req := validCreateRequest("Broken story")
		delete(req, "summary")

		resp := postJSON(t, ts.APIURL("/articles"), req, editorToken)
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("invalid category", func(t *testing.T) {
		req := validCreateRequest("Misfiled story")
		req["category"] = "Sports"

		resp := postJSON(t, ts.APIURL("/articles"), req, editorToken)
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("duplicate title and date", func(t *testing.T) {
		req := validCreateRequest("Same story")
		req["date"] = "2024-04-01T09:00:00Z"

		resp := postJSON(t, ts.APIURL("/articles"), req, editorToken)
		testutil.AssertStatusCode(t, resp, http.StatusCreated)

		resp = postJSON(t, ts.APIURL("/articles"), req, editorToken)
		testutil.AssertStatusCode(t, resp, http.StatusConflict)
	})
}

func TestArticleHandler_Latest(t *testing.T) {
	ts := testutil.NewTestServer(t)

	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	testutil.NewArticleBuilder().WithArticleID(1).WithTitle("Older").WithDate(base).Build(t, ts.DB.DB)
	testutil.NewArticleBuilder().WithArticleID(2).WithTitle("Newer").WithDate(base.Add(time.Hour)).Build(t, ts.DB.DB)

	resp := getJSON(t, ts.APIURL("/articles/latest"))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var articles []articlePayload
	testutil.AssertJSONResponse(t, resp, &articles)
	require.Len(t, articles, 2)
	assert.Equal(t, "Newer", articles[0].Title)
	assert.Equal(t, "Older", articles[1].Title)
}

func TestArticleHandler_LatestLimit(t *testing.T) {
	ts := testutil.NewTestServer(t)

	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		testutil.NewArticleBuilder().
			WithArticleID(i).
			WithDate(base.Add(time.Duration(i) * time.Hour)).
			Build(t, ts.DB.DB)
	}

	resp := getJSON(t, ts.APIURL("/articles/latest?limit=2"))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var articles []articlePayload
	testutil.AssertJSONResponse(t, resp, &articles)
	assert.Len(t, articles, 2)
}

func TestArticleHandler_ByCategory(t *testing.T) {
	ts := testutil.NewTestServer(t)

	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	testutil.NewArticleBuilder().WithArticleID(1).WithTitle("Pol").WithDate(base).WithCategory(domain.CategoryPolitical).Build(t, ts.DB.DB)
	testutil.NewArticleBuilder().WithArticleID(2).WithTitle("Gen").WithDate(base).WithCategory(domain.CategoryGeneral).Build(t, ts.DB.DB)

	t.Run("political", func(t *testing.T) {
		resp := getJSON(t, ts.APIURL("/articles/category/Political"))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var articles []articlePayload
		testutil.AssertJSONResponse(t, resp, &articles)
		require.Len(t, articles, 1)
		assert.Equal(t, "Pol", articles[0].Title)
	})

	t.Run("unknown category", func(t *testing.T) {
		resp := getJSON(t, ts.APIURL("/articles/category/Sports"))
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}

func TestArticleHandler_Featured(t *testing.T) {
	ts := testutil.NewTestServer(t)

	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	testutil.NewArticleBuilder().WithArticleID(1).WithTitle("Plain").WithDate(base.Add(time.Hour)).Build(t, ts.DB.DB)
	testutil.NewArticleBuilder().WithArticleID(2).WithTitle("Starred").WithDate(base).WithFeatured(true).Build(t, ts.DB.DB)

	resp := getJSON(t, ts.APIURL("/articles/featured"))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var articles []articlePayload
	testutil.AssertJSONResponse(t, resp, &articles)
	require.Len(t, articles, 1)
	assert.Equal(t, "Starred", articles[0].Title)
}

func TestArticleHandler_GetByID(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewArticleBuilder().WithArticleID(7).WithTitle("Lucky Seven").Build(t, ts.DB.DB)

	t.Run("existing article", func(t *testing.T) {
		resp := getJSON(t, ts.APIURL("/articles/7"))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var article articlePayload
		testutil.AssertJSONResponse(t, resp, &article)
		assert.Equal(t, "Lucky Seven", article.Title)
		assert.Equal(t, 7, article.ArticleID)
	})

	t.Run("unknown id", func(t *testing.T) {
		resp := getJSON(t, ts.APIURL("/articles/999"))
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Article not found")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		resp := getJSON(t, ts.APIURL("/articles/not-a-number"))
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}

func TestHealthEndpoint(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := getJSON(t, ts.BaseURL()+"/health")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var health map[string]string
	testutil.AssertJSONResponse(t, resp, &health)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "connected", health["dbState"])
}
