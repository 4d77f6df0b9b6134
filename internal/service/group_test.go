package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apeerhq/apeer/internal/api"
)

func TestGroupService_ListFallsBackToLegacyPath(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/groups" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode([]Group{{ID: "g1", Name: "Team Rocket", MemberCount: 3}})
	}))
	defer server.Close()

	svc := NewGroupService(api.NewClient(server.URL), false)
	groups, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/groups", "/teacher/groups"}, paths)
	require.Len(t, groups, 1)
	assert.Equal(t, "Team Rocket", groups[0].Name)
}

func TestGroupService_CreatePrefersCurrentEndpoint(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode(Group{ID: "g2", Name: "Alpha"})
	}))
	defer server.Close()

	svc := NewGroupService(api.NewClient(server.URL), false)
	group, err := svc.Create(context.Background(), "Alpha", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/groups"}, paths)
	assert.Equal(t, "g2", group.ID)
}

func TestGroupService_RemoveEncodesStudentID(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	svc := NewGroupService(api.NewClient(server.URL), false)
	require.NoError(t, svc.Remove(context.Background(), "g1", "s 1"))
	assert.Equal(t, "studentId=s+1", gotQuery)
}

func TestGroupService_Membership(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(Group{ID: "g1", MemberCount: 4})
	}))
	defer server.Close()

	svc := NewGroupService(api.NewClient(server.URL), false)

	_, err := svc.AddMember(context.Background(), "g1", "u7")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/teacher/groups/g1/members/u7", gotPath)

	_, err = svc.RemoveMember(context.Background(), "g1", "u7")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/teacher/groups/g1/members/u7", gotPath)
}
