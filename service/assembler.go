// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"time"

	"github.com/danielhkuo/quickly-vote/models"
)

// MapPollToResponse builds the client view of a poll. Choices missing from
// counts report zero votes, and expired is evaluated against now.
func MapPollToResponse(poll models.Poll, counts map[string]int64, creator models.User, selected *string, now time.Time) models.PollResponse {
	choices := make([]models.ChoiceResponse, 0, len(poll.Choices))
	for _, c := range poll.Choices {
		choices = append(choices, models.ChoiceResponse{
			ID:        c.ID,
			Text:      c.Text,
			VoteCount: counts[c.ID],
		})
	}

	var total int64
	for _, c := range choices {
		total += c.VoteCount
	}

	resp := models.PollResponse{
		ID:       poll.ID,
		Question: poll.Question,
		Choices:  choices,
		CreatedBy: models.UserSummary{
			ID:       creator.ID,
			Username: creator.Username,
			Name:     creator.Name,
		},
		CreationDateTime:   poll.CreatedAt,
		ExpirationDateTime: poll.ExpirationDateTime,
		Expired:            poll.ExpirationDateTime.Before(now),
		TotalVotes:         total,
	}

	if selected != nil {
		id := *selected
		resp.SelectedChoice = &id
	}

	return resp
}

func countsByChoice(rows []models.ChoiceVoteCount) map[string]int64 {
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.ChoiceID] = r.VoteCount
	}
	return counts
}
