package priority

import (
	"fmt"
	"sort"
	"strings"
)

// OwnerRequest is the task-side input to SuggestOwner.
type OwnerRequest struct {
	SkillTags       string
	ComplexityLevel int
}

// ParseSkillTags splits a comma-separated free-text tag list into a
// lowercase slice. Matching is exact-token and case-insensitive; no
// fuzzy matching.
func ParseSkillTags(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.ToLower(strings.TrimSpace(p)))
	}
	return out
}

// SuggestOwner ranks eligible members for a task and returns the best
// match, or nil when nobody is eligible. Inactive members and members
// at capacity are excluded outright, not penalized. A nil result is a
// normal outcome; callers fall back to leaving the task unassigned.
func SuggestOwner(task OwnerRequest, members []Member, rec AssignmentRecommendation) *OwnerSuggestion {
	if len(members) == 0 {
		return nil
	}

	taskSkills := ParseSkillTags(task.SkillTags)

	type candidate struct {
		member  Member
		score   float64
		reasons []string
	}
	var candidates []candidate

	for _, member := range members {
		if !member.IsActive {
			continue
		}
		if member.OpenTasks >= member.MaxConcurrentTasks {
			continue
		}

		var score float64
		var reasons []string

		free := member.MaxConcurrentTasks - member.OpenTasks
		score += float64(free) / float64(member.MaxConcurrentTasks) * 20
		reasons = append(reasons, fmt.Sprintf("capacity: %d slots available", free))

		if member.SeniorityLevel >= rec.RecommendedSeniority {
			score += 30
			reasons = append(reasons, "seniority level appropriate")
		} else if member.SeniorityLevel == rec.RecommendedSeniority-1 {
			score += 15
			reasons = append(reasons, "seniority level close")
		}

		memberSkills := ParseSkillTags(member.SkillTags)
		var matching []string
		for _, s := range taskSkills {
			for _, ms := range memberSkills {
				if s == ms {
					matching = append(matching, s)
					break
				}
			}
		}
		if len(matching) > 0 {
			taskSkillCount := len(taskSkills)
			if taskSkillCount < 1 {
				taskSkillCount = 1
			}
			score += float64(len(matching)) / float64(taskSkillCount) * 40
			reasons = append(reasons, "skills: "+strings.Join(matching, ", "))
		}

		candidates = append(candidates, candidate{member: member, score: score, reasons: reasons})
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	best := candidates[0]

	confidence := best.score / 100
	if confidence > 1 {
		confidence = 1
	}

	return &OwnerSuggestion{
		MemberID:   best.member.ID,
		MemberName: best.member.Name,
		Confidence: confidence,
		Reason:     strings.Join(best.reasons, "; "),
	}
}
