// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package rulebook

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/quinn-tui/internal/gateway"
)

// fakeGateway scripts list/upload responses and records the call order.
type fakeGateway struct {
	lists     [][]string
	listErr   error
	upload    gateway.UploadResult
	uploadErr error

	calls    []string
	uploaded []byte
}

func (f *fakeGateway) ListRulebooks(ctx context.Context) ([]string, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.lists) == 0 {
		return []string{}, nil
	}
	next := f.lists[0]
	if len(f.lists) > 1 {
		f.lists = f.lists[1:]
	}
	return next, nil
}

func (f *fakeGateway) UploadRulebook(ctx context.Context, content []byte, filename string) (gateway.UploadResult, error) {
	f.calls = append(f.calls, "upload:"+filename)
	f.uploaded = content
	return f.upload, f.uploadErr
}

// =============================================================================
// DEFAULT SELECTION TESTS
// =============================================================================

func TestDefaultSelection(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"preferred wins", []string{"foo.pdf", "rising_sun_rules.pdf", "bar.pdf"}, "rising_sun_rules.pdf"},
		{"first when no match", []string{"foo.pdf", "bar.pdf"}, "foo.pdf"},
		{"empty", []string{}, ""},
		{"nil", nil, ""},
		{"case insensitive", []string{"a.pdf", "Rising_Sun_Rulebook.pdf"}, "Rising_Sun_Rulebook.pdf"},
		{"first of several matches", []string{"x.pdf", "RISING_SUN_v2.pdf", "rising_sun_v1.pdf"}, "RISING_SUN_v2.pdf"},
		{"substring not prefix", []string{"a.pdf", "my-rising_sun-faq.pdf"}, "my-rising_sun-faq.pdf"},
		{"space is not underscore", []string{"a.pdf", "Rising Sun.pdf"}, "a.pdf"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DefaultSelection(tc.names, DefaultPreferred))
		})
	}
}

func TestDefaultSelection_EmptyPreferred(t *testing.T) {
	assert.Equal(t, "foo.pdf", DefaultSelection([]string{"foo.pdf", "rising_sun.pdf"}, ""))
}

// =============================================================================
// REFRESH TESTS
// =============================================================================

func TestRefresh_AppliesDefaultWhenEmpty(t *testing.T) {
	gw := &fakeGateway{lists: [][]string{{"foo.pdf", "rising_sun_rules.pdf", "bar.pdf"}}}
	reg := NewRegistry(gw)

	require.NoError(t, reg.Refresh(context.Background()))

	assert.Equal(t, []string{"foo.pdf", "rising_sun_rules.pdf", "bar.pdf"}, reg.Names())
	assert.Equal(t, "rising_sun_rules.pdf", reg.Selection())
}

func TestRefresh_FallsBackToFirst(t *testing.T) {
	reg := NewRegistry(&fakeGateway{lists: [][]string{{"foo.pdf", "bar.pdf"}}})

	require.NoError(t, reg.Refresh(context.Background()))
	assert.Equal(t, "foo.pdf", reg.Selection())
}

func TestRefresh_EmptyListKeepsSelectionEmpty(t *testing.T) {
	reg := NewRegistry(&fakeGateway{lists: [][]string{{}}})

	require.NoError(t, reg.Refresh(context.Background()))
	assert.Empty(t, reg.Selection())
	assert.Empty(t, reg.Names())
}

func TestRefresh_NeverOverridesSelection(t *testing.T) {
	reg := NewRegistry(&fakeGateway{lists: [][]string{{"foo.pdf", "rising_sun.pdf"}}})
	reg.SetSelection("foo.pdf")

	require.NoError(t, reg.Refresh(context.Background()))
	assert.Equal(t, "foo.pdf", reg.Selection())
}

func TestRefresh_KeepsStaleSelection(t *testing.T) {
	// The selection is not reconciled against the new list.
	reg := NewRegistry(&fakeGateway{lists: [][]string{{"a.pdf"}, {"b.pdf"}}})

	require.NoError(t, reg.Refresh(context.Background()))
	require.Equal(t, "a.pdf", reg.Selection())

	require.NoError(t, reg.Refresh(context.Background()))
	assert.Equal(t, []string{"b.pdf"}, reg.Names())
	assert.Equal(t, "a.pdf", reg.Selection())
	assert.False(t, reg.Contains("a.pdf"))
}

func TestRefresh_ReplacesWholesale(t *testing.T) {
	reg := NewRegistry(&fakeGateway{lists: [][]string{{"a.pdf", "b.pdf", "c.pdf"}, {"c.pdf"}}})

	require.NoError(t, reg.Refresh(context.Background()))
	require.NoError(t, reg.Refresh(context.Background()))

	assert.Equal(t, []string{"c.pdf"}, reg.Names())
}

func TestRefresh_FailureLeavesStateUntouched(t *testing.T) {
	gw := &fakeGateway{lists: [][]string{{"a.pdf"}}}
	reg := NewRegistry(gw)
	require.NoError(t, reg.Refresh(context.Background()))

	remote := &gateway.RemoteError{Status: 500, Body: "disk gone"}
	gw.listErr = remote

	err := reg.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorAs(t, err, &remote)
	assert.Equal(t, []string{"a.pdf"}, reg.Names())
	assert.Equal(t, "a.pdf", reg.Selection())
}

func TestRefresh_CustomPreferred(t *testing.T) {
	reg := NewRegistry(&fakeGateway{lists: [][]string{{"a.pdf", "Root_Law.pdf"}}}, WithPreferred("root"))

	require.NoError(t, reg.Refresh(context.Background()))
	assert.Equal(t, "Root_Law.pdf", reg.Selection())
}

func TestNames_ReturnsCopy(t *testing.T) {
	reg := NewRegistry(&fakeGateway{lists: [][]string{{"a.pdf"}}})
	require.NoError(t, reg.Refresh(context.Background()))

	names := reg.Names()
	names[0] = "mutated"

	assert.Equal(t, []string{"a.pdf"}, reg.Names())
}

// =============================================================================
// SELECTION TESTS
// =============================================================================

func TestSetSelection_Unvalidated(t *testing.T) {
	reg := NewRegistry(&fakeGateway{})

	reg.SetSelection("never-listed.pdf")
	assert.Equal(t, "never-listed.pdf", reg.Selection())

	reg.SetSelection("")
	assert.Empty(t, reg.Selection())
}

// =============================================================================
// UPLOAD TESTS
// =============================================================================

func TestUploadAndRegister_ExplicitSelectionWins(t *testing.T) {
	gw := &fakeGateway{
		upload: gateway.UploadResult{Filename: "new.pdf"},
		lists:  [][]string{{"old.pdf", "new.pdf"}},
	}
	reg := NewRegistry(gw)

	accepted, err := reg.UploadAndRegister(context.Background(), []byte("pdf"), "new.pdf")
	require.NoError(t, err)

	assert.Equal(t, "new.pdf", accepted)
	assert.Equal(t, "new.pdf", reg.Selection())
	assert.Equal(t, []string{"old.pdf", "new.pdf"}, reg.Names())
	assert.Equal(t, []string{"upload:new.pdf", "list"}, gw.calls)
	assert.Equal(t, []byte("pdf"), gw.uploaded)
}

func TestUploadAndRegister_OverridesDefaultPolicyMatch(t *testing.T) {
	gw := &fakeGateway{
		upload: gateway.UploadResult{Filename: "house_rules.pdf"},
		lists:  [][]string{{"rising_sun.pdf", "house_rules.pdf"}},
	}
	reg := NewRegistry(gw)

	_, err := reg.UploadAndRegister(context.Background(), nil, "house_rules.pdf")
	require.NoError(t, err)
	assert.Equal(t, "house_rules.pdf", reg.Selection())
}

func TestUploadAndRegister_OverridesExistingSelection(t *testing.T) {
	gw := &fakeGateway{
		upload: gateway.UploadResult{Filename: "new.pdf"},
		lists:  [][]string{{"old.pdf", "new.pdf"}},
	}
	reg := NewRegistry(gw)
	reg.SetSelection("old.pdf")

	_, err := reg.UploadAndRegister(context.Background(), nil, "new.pdf")
	require.NoError(t, err)
	assert.Equal(t, "new.pdf", reg.Selection())
}

func TestUploadAndRegister_BackendNormalizedName(t *testing.T) {
	gw := &fakeGateway{
		upload: gateway.UploadResult{Filename: "my_rules.pdf"},
		lists:  [][]string{{"my_rules.pdf"}},
	}
	reg := NewRegistry(gw)

	accepted, err := reg.UploadAndRegister(context.Background(), nil, "My Rules.PDF")
	require.NoError(t, err)
	assert.Equal(t, "my_rules.pdf", accepted)
	assert.Equal(t, "my_rules.pdf", reg.Selection())
}

func TestUploadAndRegister_NoFilenameKeepsPolicyChoice(t *testing.T) {
	gw := &fakeGateway{lists: [][]string{{"foo.pdf", "rising_sun.pdf"}}}
	reg := NewRegistry(gw)

	accepted, err := reg.UploadAndRegister(context.Background(), nil, "whatever.pdf")
	require.NoError(t, err)
	assert.Empty(t, accepted)
	assert.Equal(t, "rising_sun.pdf", reg.Selection())
}

func TestUploadAndRegister_UploadFailureSkipsRefresh(t *testing.T) {
	gw := &fakeGateway{uploadErr: &gateway.RemoteError{Status: 400, Body: "Only PDF files are allowed"}}
	reg := NewRegistry(gw)

	_, err := reg.UploadAndRegister(context.Background(), []byte("txt"), "notes.txt")
	require.Error(t, err)
	assert.True(t, gateway.IsRemote(err))
	assert.Equal(t, []string{"upload:notes.txt"}, gw.calls)
	assert.Empty(t, reg.Selection())
}

func TestUploadAndRegister_RefreshFailureStillSelects(t *testing.T) {
	gw := &fakeGateway{
		upload:  gateway.UploadResult{Filename: "new.pdf"},
		listErr: errors.New("connection reset"),
	}
	reg := NewRegistry(gw)

	accepted, err := reg.UploadAndRegister(context.Background(), nil, "new.pdf")
	require.Error(t, err)
	assert.Equal(t, "new.pdf", accepted)
	assert.Equal(t, "new.pdf", reg.Selection())
}
