package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/EnzoDelpy/tunerate-api/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
	return newClient(srv.URL, tokens, srv.Client())
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestSearchAlbumsReclassifiesSingles(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "album", r.URL.Query().Get("type"))
		writeJSON(t, w, searchResponse{Albums: &albumPage{Items: []Album{
			{ID: "a1", Name: "Full Length", AlbumType: "album", TotalTracks: 12},
			{ID: "a2", Name: "True Single", AlbumType: "single", TotalTracks: 1},
			{ID: "a3", Name: "Short Player", AlbumType: "single", TotalTracks: 2},
			{ID: "a4", Name: "Mystery Single", AlbumType: "single", TotalTracks: 0},
			{ID: "a5", Name: "Existing EP", AlbumType: "ep", TotalTracks: 5},
			{ID: "a6", Name: "Best Of", AlbumType: "compilation", TotalTracks: 20},
		}}})
	}))

	albums, err := client.SearchAlbums(context.Background(), "anything", 20, 0)
	require.NoError(t, err)

	got := map[string]string{}
	for _, a := range albums {
		got[a.ID] = a.AlbumType
	}

	assert.Equal(t, map[string]string{
		"a1": "album",
		"a3": "ep", // two-track single surfaces as EP
		"a4": "ep", // unknown track count, benefit of the doubt
		"a5": "ep",
	}, got)
	assert.NotContains(t, got, "a2")
	assert.NotContains(t, got, "a6")
}

func TestGetAlbumDetailsDirect(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/albums/album123", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		writeJSON(t, w, Album{ID: "album123", Name: "OK Album", AlbumType: "album"})
	}))

	album, err := client.GetAlbumDetails(context.Background(), "album123")
	require.NoError(t, err)
	assert.Equal(t, "album123", album.ID)
	assert.Equal(t, "OK Album", album.Name)
}

func TestGetAlbumDetailsSearchFallback(t *testing.T) {
	var searched bool
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/albums/"):
			w.WriteHeader(http.StatusNotFound)
		case r.URL.Path == "/search":
			searched = true
			writeJSON(t, w, searchResponse{Albums: &albumPage{Items: []Album{
				{ID: "other", Name: "Not It", AlbumType: "album"},
				{ID: "flaky1", Name: "Found Via Search", AlbumType: "album"},
			}}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	album, err := client.GetAlbumDetails(context.Background(), "flaky1")
	require.NoError(t, err)
	assert.True(t, searched)
	assert.Equal(t, "flaky1", album.ID)
}

func TestGetAlbumDetailsEncodedRetry(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/albums/odd%2Bid":
			writeJSON(t, w, Album{ID: "odd+id", Name: "Escaped", AlbumType: "album"})
		case "/search":
			writeJSON(t, w, searchResponse{Albums: &albumPage{}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	album, err := client.GetAlbumDetails(context.Background(), "odd+id")
	require.NoError(t, err)
	assert.Equal(t, "odd+id", album.ID)
}

func TestGetAlbumDetailsNotFoundAfterFallbacks(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search" {
			writeJSON(t, w, searchResponse{Albums: &albumPage{Items: []Album{
				{ID: "unrelated", Name: "Unrelated", AlbumType: "album"},
			}}})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetAlbumDetails(context.Background(), "missing42")
	assert.ErrorIs(t, err, apperr.ErrCatalogNotFound)
}

func TestUpstreamErrorIsUnavailable(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.SearchArtists(context.Background(), "anyone")
	assert.ErrorIs(t, err, apperr.ErrCatalogUnavailable)
}

func TestMissingCredentials(t *testing.T) {
	client := newClient("http://127.0.0.1:0", nil, nil)

	_, err := client.SearchArtists(context.Background(), "anyone")
	assert.ErrorIs(t, err, apperr.ErrCatalogUnavailable)
}

func TestTestExternalID(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/albums/known" {
			writeJSON(t, w, Album{ID: "known", AlbumType: "album"})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	assert.True(t, client.TestExternalID(context.Background(), "known"))
	assert.False(t, client.TestExternalID(context.Background(), "unknown"))
}

func TestGetArtistAlbumsFiltersLikeSearch(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/artists/artist9/albums", r.URL.Path)
		writeJSON(t, w, albumPage{Items: []Album{
			{ID: "b1", AlbumType: "album", TotalTracks: 10},
			{ID: "b2", AlbumType: "single", TotalTracks: 1},
			{ID: "b3", AlbumType: "single", TotalTracks: 3},
		}})
	}))

	albums, err := client.GetArtistAlbums(context.Background(), "artist9")
	require.NoError(t, err)
	require.Len(t, albums, 2)
	assert.Equal(t, "b1", albums[0].ID)
	assert.Equal(t, "ep", albums[1].AlbumType)
}
