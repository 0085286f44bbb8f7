package services

import (
	"context"

	repository "task-track-system.com/task-track-system/internal/repositories"
)

// AudienceResolver computes the recipient set for a notification fan-out.
// It holds no state of its own; it is a thin mapping over the membership
// relations. Results are deduplicated, and the acting user is dropped for
// event kinds whose rule says you don't notify yourself.
type AudienceResolver struct {
	members *repository.MembershipRepository
}

func NewAudienceResolver(members *repository.MembershipRepository) *AudienceResolver {
	return &AudienceResolver{members: members}
}

func (a *AudienceResolver) TaskMembers(ctx context.Context, taskID, excludeUserID string) ([]string, error) {
	ids, err := a.members.TaskMemberIDs(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return dedupe(ids, excludeUserID), nil
}

func (a *AudienceResolver) ProjectMembers(ctx context.Context, projectID, excludeUserID string) ([]string, error) {
	ids, err := a.members.ProjectMemberIDs(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return dedupe(ids, excludeUserID), nil
}

// dedupe keeps first occurrences and drops excludeUserID (pass "" to keep
// everyone).
func dedupe(ids []string, excludeUserID string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if id == "" || id == excludeUserID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
