package api

import (
	"github.com/Smarter-Poker/tournament-scraper/app/database"
	"github.com/Smarter-Poker/tournament-scraper/app/tasks"
)

type Handler struct {
	venueRepo      database.VenueRepository
	tournamentRepo database.TournamentRepository
	scheduler      tasks.SchedulerInterface
}
