package controllers

import (
	"net/http"
	"time"

	"detaildesk-backend/services"
	"detaildesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboard summarizes the follow-up queue: totals per bucket plus the
// ten most urgent clients.
func GetDashboard(c *gin.Context) {
	clients, err := clientStore().ListClients(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	now := time.Now()
	counts := map[string]int{}
	for i := range clients {
		counts[string(services.FollowupBucket(&clients[i], now))]++
	}

	due := services.FilterClients(clients, "", "due", "", now)
	queue := services.SortClients(due, "followup", now)
	if len(queue) > 10 {
		queue = queue[:10]
	}

	type queueEntry struct {
		ID             string `json:"id"`
		FullName       string `json:"full_name"`
		Phone          string `json:"phone"`
		FollowupBucket string `json:"followup_bucket"`
		FollowupLabel  string `json:"followup_label"`
		FollowupNote   string `json:"followup_note"`
	}
	entries := make([]queueEntry, 0, len(queue))
	for i := range queue {
		entries = append(entries, queueEntry{
			ID:             queue[i].ID.String(),
			FullName:       queue[i].FullName,
			Phone:          queue[i].Phone,
			FollowupBucket: string(services.FollowupBucket(&queue[i], now)),
			FollowupLabel:  services.FollowupLabel(&queue[i], now),
			FollowupNote:   queue[i].FollowupNote,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total_clients": len(clients),
		"due":           counts["overdue"] + counts["today"],
		"due_soon":      counts["soon"],
		"upcoming":      counts["upcoming"],
		"unscheduled":   counts["unscheduled"],
		"queue":         entries,
	})
}
