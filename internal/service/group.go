package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/apeerhq/apeer/internal/api"
	"github.com/apeerhq/apeer/internal/errors"
	"github.com/google/uuid"
)

// GroupService manages class groups and their membership.
type GroupService struct {
	client *api.Client
	mock   bool
}

// NewGroupService creates the group façade.
func NewGroupService(client *api.Client, mock bool) *GroupService {
	return &GroupService{client: client, mock: mock}
}

// List returns all groups. The resource moved from /teacher/groups to
// /groups; the new path is tried first.
func (s *GroupService) List(ctx context.Context) ([]Group, error) {
	if s.mock {
		return []Group{}, nil
	}

	var groups []Group
	err := api.First(ctx,
		func(ctx context.Context) error {
			groups = nil
			return s.client.DoJSON(ctx, api.Request{Method: http.MethodGet, Path: "/groups"}, &groups)
		},
		func(ctx context.Context) error {
			groups = nil
			return s.client.DoJSON(ctx, api.Request{Method: http.MethodGet, Path: "/teacher/groups"}, &groups)
		},
	)
	return groups, err
}

type createGroupRequest struct {
	Name       string  `json:"name"`
	ActivityID *string `json:"activityId"`
}

type legacyCreateGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
}

// Create creates a group, trying the current endpoint first and falling
// back to the legacy teacher-scoped one.
func (s *GroupService) Create(ctx context.Context, name string, memberIDs []string) (Group, error) {
	if name == "" {
		return Group{}, errors.NewFieldRequiredError("group name")
	}

	if s.mock {
		return Group{ID: "g-" + uuid.NewString(), Name: name, Members: []Student{}}, nil
	}

	var group Group
	err := api.First(ctx,
		func(ctx context.Context) error {
			group = Group{}
			return s.client.DoJSON(ctx, api.Request{
				Method: http.MethodPost,
				Path:   "/groups",
				Body:   createGroupRequest{Name: name},
			}, &group)
		},
		func(ctx context.Context) error {
			group = Group{}
			return s.client.DoJSON(ctx, api.Request{
				Method: http.MethodPost,
				Path:   "/teacher/groups",
				Body:   legacyCreateGroupRequest{Name: name, MemberIDs: memberIDs},
			}, &group)
		},
	)
	return group, err
}

type assignRequest struct {
	StudentID string `json:"studentId"`
}

// Assign places a student into a group.
func (s *GroupService) Assign(ctx context.Context, groupID, studentID string) (Group, error) {
	if s.mock {
		return Group{ID: groupID, Members: []Student{}}, nil
	}

	var group Group
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/groups/%s/assign", groupID),
		Body:   assignRequest{StudentID: studentID},
	}, &group)
	return group, err
}

// Remove takes a student out of a group.
func (s *GroupService) Remove(ctx context.Context, groupID, studentID string) error {
	if s.mock {
		return nil
	}

	return s.client.DoJSON(ctx, api.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/groups/%s/remove?studentId=%s", groupID, url.QueryEscape(studentID)),
	}, nil)
}

type updateGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
}

// Update renames a group and replaces its member list.
func (s *GroupService) Update(ctx context.Context, groupID, name string, memberIDs []string) (Group, error) {
	if s.mock {
		return Group{ID: groupID, Name: name, Members: []Student{}}, nil
	}

	var group Group
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/teacher/groups/%s", groupID),
		Body:   updateGroupRequest{Name: name, MemberIDs: memberIDs},
	}, &group)
	return group, err
}

// Delete removes a group.
func (s *GroupService) Delete(ctx context.Context, groupID string) error {
	if s.mock {
		return nil
	}

	return s.client.DoJSON(ctx, api.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/teacher/groups/%s", groupID),
	}, nil)
}

// AddMember adds one user to a group.
func (s *GroupService) AddMember(ctx context.Context, groupID, userID string) (Group, error) {
	if s.mock {
		return Group{ID: groupID, Members: []Student{}}, nil
	}

	var group Group
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/teacher/groups/%s/members/%s", groupID, userID),
	}, &group)
	return group, err
}

// RemoveMember removes one user from a group.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, userID string) (Group, error) {
	if s.mock {
		return Group{ID: groupID, Members: []Student{}}, nil
	}

	var group Group
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/teacher/groups/%s/members/%s", groupID, userID),
	}, &group)
	return group, err
}
