package priority

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestOwner_FiltersIneligible(t *testing.T) {
	members := []Member{
		{ID: "m1", Name: "Inactive", SeniorityLevel: 5, MaxConcurrentTasks: 5, OpenTasks: 0, IsActive: false, SkillTags: "Web,AI"},
		{ID: "m2", Name: "Full", SeniorityLevel: 5, MaxConcurrentTasks: 3, OpenTasks: 3, IsActive: true, SkillTags: "Web,AI"},
		{ID: "m3", Name: "Eligible", SeniorityLevel: 2, MaxConcurrentTasks: 3, OpenTasks: 1, IsActive: true, SkillTags: "Web,Design"},
	}
	rec := AssignmentRecommendation{RecommendedSeniority: 2}

	got := SuggestOwner(OwnerRequest{SkillTags: "web,ai", ComplexityLevel: 3}, members, rec)
	require.NotNil(t, got)
	assert.Equal(t, "m3", got.MemberID)
	assert.Equal(t, "Eligible", got.MemberName)
	assert.Greater(t, got.Confidence, 0.0)
	assert.Less(t, got.Confidence, 1.0)
}

func TestSuggestOwner_NoMembers(t *testing.T) {
	rec := AssignmentRecommendation{RecommendedSeniority: 2}
	assert.Nil(t, SuggestOwner(OwnerRequest{}, nil, rec))
}

func TestSuggestOwner_NoEligibleCandidate(t *testing.T) {
	members := []Member{
		{ID: "m1", Name: "Inactive", IsActive: false, MaxConcurrentTasks: 5},
		{ID: "m2", Name: "Full", IsActive: true, MaxConcurrentTasks: 2, OpenTasks: 2},
	}
	rec := AssignmentRecommendation{RecommendedSeniority: 2}
	assert.Nil(t, SuggestOwner(OwnerRequest{SkillTags: "web"}, members, rec))
}

func TestSuggestOwner_SkillMatchWins(t *testing.T) {
	members := []Member{
		{ID: "gen", Name: "Generalist", SeniorityLevel: 3, MaxConcurrentTasks: 4, OpenTasks: 1, IsActive: true, SkillTags: "Ops"},
		{ID: "spec", Name: "Specialist", SeniorityLevel: 3, MaxConcurrentTasks: 4, OpenTasks: 1, IsActive: true, SkillTags: "Finance,AI"},
	}
	rec := AssignmentRecommendation{RecommendedSeniority: 3}

	got := SuggestOwner(OwnerRequest{SkillTags: "finance,ai", ComplexityLevel: 3}, members, rec)
	require.NotNil(t, got)
	assert.Equal(t, "spec", got.MemberID)
	assert.Contains(t, got.Reason, "skills: finance, ai")
}

func TestSuggestOwner_SkillsCaseInsensitive(t *testing.T) {
	members := []Member{
		{ID: "m", Name: "M", SeniorityLevel: 3, MaxConcurrentTasks: 3, OpenTasks: 0, IsActive: true, SkillTags: " WEB , Design "},
	}
	rec := AssignmentRecommendation{RecommendedSeniority: 2}

	got := SuggestOwner(OwnerRequest{SkillTags: "web"}, members, rec)
	require.NotNil(t, got)
	assert.Contains(t, got.Reason, "skills: web")
}

func TestSuggestOwner_SeniorityScoring(t *testing.T) {
	rec := AssignmentRecommendation{RecommendedSeniority: 4}

	exact := []Member{{ID: "a", Name: "A", SeniorityLevel: 4, MaxConcurrentTasks: 2, OpenTasks: 1, IsActive: true}}
	oneBelow := []Member{{ID: "b", Name: "B", SeniorityLevel: 3, MaxConcurrentTasks: 2, OpenTasks: 1, IsActive: true}}
	wayBelow := []Member{{ID: "c", Name: "C", SeniorityLevel: 1, MaxConcurrentTasks: 2, OpenTasks: 1, IsActive: true}}

	// capacity contributes (1/2)*20 = 10 in each case
	sExact := SuggestOwner(OwnerRequest{}, exact, rec)
	sOneBelow := SuggestOwner(OwnerRequest{}, oneBelow, rec)
	sWayBelow := SuggestOwner(OwnerRequest{}, wayBelow, rec)

	require.NotNil(t, sExact)
	require.NotNil(t, sOneBelow)
	require.NotNil(t, sWayBelow)
	assert.InDelta(t, 0.40, sExact.Confidence, 1e-9)
	assert.InDelta(t, 0.25, sOneBelow.Confidence, 1e-9)
	assert.InDelta(t, 0.10, sWayBelow.Confidence, 1e-9)
}

func TestSuggestOwner_ReasonJoinedWithSemicolons(t *testing.T) {
	members := []Member{
		{ID: "m", Name: "M", SeniorityLevel: 4, MaxConcurrentTasks: 4, OpenTasks: 1, IsActive: true, SkillTags: "ops"},
	}
	rec := AssignmentRecommendation{RecommendedSeniority: 2}

	got := SuggestOwner(OwnerRequest{SkillTags: "ops"}, members, rec)
	require.NotNil(t, got)
	parts := strings.Split(got.Reason, "; ")
	assert.Equal(t, []string{"capacity: 3 slots available", "seniority level appropriate", "skills: ops"}, parts)
}

func TestParseSkillTags(t *testing.T) {
	assert.Nil(t, ParseSkillTags(""))
	assert.Nil(t, ParseSkillTags("   "))
	assert.Equal(t, []string{"web", "ai"}, ParseSkillTags(" Web , AI "))
}
