package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Smarter-Poker/tournament-scraper/app/cfg"
	"github.com/Smarter-Poker/tournament-scraper/app/database"
	"github.com/Smarter-Poker/tournament-scraper/app/tasks"
)

func NewHandler(venueRepo database.VenueRepository, tournamentRepo database.TournamentRepository,
	scheduler tasks.SchedulerInterface) *Handler {
	return &Handler{
		venueRepo:      venueRepo,
		tournamentRepo: tournamentRepo,
		scheduler:      scheduler,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   cfg.GetVersion(),
	}

	if venueCount, err := h.venueRepo.GetVenueCount(); err == nil {
		health["venues"] = venueCount
	}
	if tournamentCount, err := h.tournamentRepo.GetTournamentCount(); err == nil {
		health["tournaments"] = tournamentCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{}

	if counts, err := h.venueRepo.GetStatusCounts(); err == nil {
		stats["venues_by_status"] = counts
	} else {
		slog.Error("Database error", "operation", "get_status_counts", "error", err)
	}

	if tournamentCount, err := h.tournamentRepo.GetTournamentCount(); err == nil {
		stats["active_tournaments"] = tournamentCount
	}

	if lastRun := h.scheduler.LastRun(); lastRun != nil {
		stats["last_run"] = map[string]interface{}{
			"started_at":           lastRun.StartedAt,
			"finished_at":          lastRun.FinishedAt,
			"duration":             lastRun.Duration().String(),
			"venues_processed":     lastRun.VenuesProcessed,
			"tournaments_found":    lastRun.TournamentsFound,
			"tournaments_upserted": lastRun.TournamentsUpserted,
			"skipped":              lastRun.Skipped,
			"unresolved":           lastRun.Unresolved,
			"pruned":               lastRun.Pruned,
			"errors":               lastRun.ErrorCount(),
		}
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) APIListVenues(c *gin.Context) {
	filter := database.VenueFilter{
		State:        c.Query("state"),
		NameContains: c.Query("name"),
		Source:       c.Query("source"),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		filter.Limit = limit
	}

	venues, err := h.venueRepo.GetVenuesForScrape(filter)
	if err != nil {
		slog.Error("Database error", "operation", "list_venues", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	list := make([]map[string]interface{}, 0, len(venues))
	for _, v := range venues {
		list = append(list, map[string]interface{}{
			"id":            v.ID,
			"name":          v.Name,
			"city":          v.City,
			"state":         v.State,
			"scrape_source": v.ScrapeSource,
			"scrape_status": v.ScrapeStatus,
			"last_scraped":  v.LastScraped,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"venues": list,
		"total":  len(list),
	})
}

func (h *Handler) APIGetVenueDetails(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing venue id parameter"})
		return
	}

	venue, err := h.venueRepo.GetVenueByID(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_venue", "venue_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if venue == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}

	tournaments, err := h.tournamentRepo.GetTournamentsByVenue(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_tournaments", "venue_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	schedule := make([]map[string]interface{}, 0, len(tournaments))
	for _, t := range tournaments {
		schedule = append(schedule, map[string]interface{}{
			"day_of_week":     t.DayOfWeek,
			"start_time":      t.StartTime,
			"buy_in":          t.BuyIn,
			"guaranteed":      t.Guaranteed,
			"game_type":       t.GameType,
			"format":          t.Format,
			"tournament_name": t.TournamentName,
			"last_seen_at":    t.LastSeenAt,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"venue": map[string]interface{}{
			"id":              venue.ID,
			"name":            venue.Name,
			"city":            venue.City,
			"state":           venue.State,
			"scrape_source":   venue.ScrapeSource,
			"scrape_url":      venue.ScrapeURL,
			"poker_atlas_url": venue.PokerAtlasURL,
			"scrape_status":   venue.ScrapeStatus,
			"last_scraped":    venue.LastScraped,
		},
		"tournaments": schedule,
		"total":       len(schedule),
	})
}

func (h *Handler) APIRescrapeVenue(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing venue id parameter"})
		return
	}

	venue, err := h.venueRepo.GetVenueByID(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_venue", "venue_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if venue == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}

	if err := h.scheduler.EnqueueRescrape(id); err != nil {
		slog.Error("Error enqueueing rescrape", "venue_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue rescrape",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Rescrape enqueued successfully",
		"venue": gin.H{
			"id":    venue.ID,
			"name":  venue.Name,
			"state": venue.State,
		},
	})
}
