// Package wire provides dependency injection for plenario.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/example/plenario/internal/adapters/cli"
	"github.com/example/plenario/internal/adapters/sqlite"
	"github.com/example/plenario/internal/api"
	"github.com/example/plenario/internal/app"
	"github.com/example/plenario/internal/config"
	"github.com/example/plenario/internal/db"
	"github.com/example/plenario/internal/ports/primary"
)

var (
	cfg    *config.Config
	logger *slog.Logger

	sittingService    primary.SittingService
	agendaService     primary.AgendaService
	attendanceService primary.AttendanceService
	votingService     primary.VotingService
	matterService     primary.MatterService
	opinionService    primary.OpinionService
	rosterService     primary.RosterService

	once sync.Once
)

// Configure sets the configuration used to build the services. It must be
// called before any accessor; without it the defaults apply.
func Configure(c *config.Config) {
	cfg = c
}

// Config returns the active configuration.
func Config() *config.Config {
	if cfg == nil {
		cfg = config.Default()
	}
	return cfg
}

// Logger returns the process logger.
func Logger() *slog.Logger {
	once.Do(initServices)
	return logger
}

// SittingService returns the singleton SittingService instance.
func SittingService() primary.SittingService {
	once.Do(initServices)
	return sittingService
}

// AgendaService returns the singleton AgendaService instance.
func AgendaService() primary.AgendaService {
	once.Do(initServices)
	return agendaService
}

// AttendanceService returns the singleton AttendanceService instance.
func AttendanceService() primary.AttendanceService {
	once.Do(initServices)
	return attendanceService
}

// VotingService returns the singleton VotingService instance.
func VotingService() primary.VotingService {
	once.Do(initServices)
	return votingService
}

// MatterService returns the singleton MatterService instance.
func MatterService() primary.MatterService {
	once.Do(initServices)
	return matterService
}

// OpinionService returns the singleton OpinionService instance.
func OpinionService() primary.OpinionService {
	once.Do(initServices)
	return opinionService
}

// RosterService returns the singleton RosterService instance.
func RosterService() primary.RosterService {
	once.Do(initServices)
	return rosterService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	c := Config()
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel()}))

	// Validated by config.Load; Default() is valid as well.
	policy, err := c.QuorumPolicy()
	if err != nil {
		log.Fatalf("invalid quorum configuration: %v", err)
	}
	tieBreaker, err := c.TieBreaker()
	if err != nil {
		log.Fatalf("invalid voting configuration: %v", err)
	}
	calendar, err := c.HolidayCalendar()
	if err != nil {
		log.Fatalf("invalid calendar configuration: %v", err)
	}

	db.SetPath(c.Database.Path)
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Secondary adapters
	sittingRepo := sqlite.NewSittingRepository(database)
	agendaRepo := sqlite.NewAgendaRepository(database)
	attendanceRepo := sqlite.NewAttendanceRepository(database)
	voteRepo := sqlite.NewVoteRepository(database)
	matterRepo := sqlite.NewMatterRepository(database)
	opinionRepo := sqlite.NewOpinionRepository(database)
	periodRepo := sqlite.NewPeriodRepository(database)
	legislatorRepo := sqlite.NewLegislatorRepository(database)
	eventRepo := sqlite.NewEventRepository(database)
	events := sqlite.NewEventWriterAdapter(eventRepo)
	minutes := sqlite.NewMinutesStore(database)

	// One lock table across services: they all mutate the same sittings.
	locks := app.NewSittingLocks()

	sittingService = app.NewSittingService(app.SittingDeps{
		SittingRepo:    sittingRepo,
		AgendaRepo:     agendaRepo,
		AttendanceRepo: attendanceRepo,
		MatterRepo:     matterRepo,
		PeriodRepo:     periodRepo,
		Roster:         legislatorRepo,
		Minutes:        minutes,
		MinutesReader:  minutes,
		Events:         events,
		EventRepo:      eventRepo,
		Calendar:       calendar,
		Locks:          locks,
		Logger:         logger,
	})
	agendaService = app.NewAgendaService(sittingRepo, agendaRepo, matterRepo, events, locks, logger)
	attendanceService = app.NewAttendanceService(sittingRepo, attendanceRepo, legislatorRepo, policy, events, locks, logger)
	votingService = app.NewVotingService(
		sittingRepo, agendaRepo, matterRepo, opinionRepo, attendanceRepo, voteRepo,
		legislatorRepo, policy, tieBreaker, events, locks, logger,
	)
	matterService = app.NewMatterService(matterRepo, locks, logger)
	opinionService = app.NewOpinionService(opinionRepo, matterRepo, locks)
	rosterService = app.NewRosterService(periodRepo, legislatorRepo, locks)
}

// SittingAdapter returns a new SittingAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func SittingAdapter() *cli.SittingAdapter {
	return SittingAdapterWithOutput(os.Stdout)
}

// SittingAdapterWithOutput returns a new SittingAdapter writing to the given output.
func SittingAdapterWithOutput(out io.Writer) *cli.SittingAdapter {
	once.Do(initServices)
	return cli.NewSittingAdapter(sittingService, agendaService, attendanceService, out)
}

// AgendaAdapter returns a new AgendaAdapter writing to stdout.
func AgendaAdapter() *cli.AgendaAdapter {
	once.Do(initServices)
	return cli.NewAgendaAdapter(agendaService, os.Stdout)
}

// ConductionAdapter returns a new ConductionAdapter writing to stdout.
func ConductionAdapter() *cli.ConductionAdapter {
	once.Do(initServices)
	return cli.NewConductionAdapter(attendanceService, votingService, os.Stdout)
}

// RegistryAdapter returns a new RegistryAdapter writing to stdout.
func RegistryAdapter() *cli.RegistryAdapter {
	once.Do(initServices)
	return cli.NewRegistryAdapter(matterService, opinionService, rosterService, os.Stdout)
}

// API returns the HTTP API over the singleton services.
func API() *api.API {
	once.Do(initServices)
	return api.New(api.Services{
		Sittings:   sittingService,
		Agenda:     agendaService,
		Attendance: attendanceService,
		Voting:     votingService,
		Matters:    matterService,
		Opinions:   opinionService,
		Roster:     rosterService,
	}, logger, Config().HTTP.AllowedOrigins)
}
