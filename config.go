package vigia

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chungastico/vigia/types"
)

// PeriodConfig is a single class period in configuration form.
//
// Start and End are inclusive "HH:MM" clock strings.
type PeriodConfig struct {
	Name  string `yaml:"name"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// ZoneConfig is a desk zone in configuration form: a named rectangle in
// frame-pixel space.
type ZoneConfig struct {
	Name   string  `yaml:"name"`
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
}

// Config is the configuration for the Monitor.
//
// All values are load-time constants; the core never mutates them at
// runtime. Duration fields accept standard Go duration strings like
// "200ms" or "5m" in YAML.
type Config struct {
	// MatchTolerance is the maximum accepted face match distance.
	// Matches at or beyond the tolerance are reported as unknown.
	MatchTolerance float64 `yaml:"matchTolerance"`

	// AttendanceInterval is the cadence of face recognition passes during
	// an attendance session. Recognition is expensive, so it runs less
	// often than raw capture.
	AttendanceInterval time.Duration `yaml:"attendanceInterval"`

	// PoseInterval is the cadence of pose estimation passes during a pose
	// session. Geometry checks are cheap, so this runs faster than
	// attendance recognition.
	PoseInterval time.Duration `yaml:"poseInterval"`

	// ParticipationCooldown is the minimum spacing between participation
	// records for the same student and period.
	ParticipationCooldown time.Duration `yaml:"participationCooldown"`

	// ParticipationPoints is the point value of each participation record.
	ParticipationPoints int `yaml:"participationPoints"`

	// MinKeypointConfidence gates individual keypoints (wrists, shoulders,
	// hips) in gesture and zone-mapping decisions.
	MinKeypointConfidence float64 `yaml:"minKeypointConfidence"`

	// MinPersonConfidence gates whole detected persons per inference tick.
	MinPersonConfidence float64 `yaml:"minPersonConfidence"`

	// MaxCaptureFailures is the number of consecutive failed frame reads
	// after which a session worker treats the source as unrecoverable and
	// self-stops. Individual failures are transient: the tick is skipped
	// and capture retried.
	MaxCaptureFailures int `yaml:"maxCaptureFailures"`

	// CaptureRetryDelay is the pause after a transient capture failure
	// before the next read attempt.
	CaptureRetryDelay time.Duration `yaml:"captureRetryDelay"`

	// ClassDays are the weekdays with classes (lowercase English names).
	ClassDays []string `yaml:"classDays"`

	// Periods is the ordered class period list. Earlier entries win when
	// periods overlap.
	Periods []PeriodConfig `yaml:"periods"`

	// Zones maps desk zones to frame-pixel rectangles.
	Zones []ZoneConfig `yaml:"zones"`
}

// DefaultConfig returns a Config with the reference classroom settings.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		MatchTolerance:        0.6,
		AttendanceInterval:    time.Second,
		PoseInterval:          200 * time.Millisecond,
		ParticipationCooldown: 5 * time.Minute,
		ParticipationPoints:   1,
		MinKeypointConfidence: 0.3,
		MinPersonConfidence:   0.35,
		MaxCaptureFailures:    10,
		CaptureRetryDelay:     500 * time.Millisecond,
		ClassDays:             []string{"monday", "tuesday", "wednesday", "thursday"},
		Periods: []PeriodConfig{
			{Name: "Clase 1", Start: "06:00", End: "07:50"},
			{Name: "Clase 2", Start: "08:00", End: "09:40"},
			{Name: "Clase 3", Start: "09:50", End: "11:30"},
			{Name: "Clase 4", Start: "16:40", End: "18:20"},
			{Name: "Clase 5", Start: "18:30", End: "19:50"},
		},
		Zones: []ZoneConfig{
			{Name: "Pupitre 1", Left: 50, Top: 100, Right: 250, Bottom: 300},
			{Name: "Pupitre 2", Left: 350, Top: 100, Right: 550, Bottom: 300},
			{Name: "Pupitre 3", Left: 50, Top: 350, Right: 250, Bottom: 450},
			{Name: "Pupitre 4", Left: 350, Top: 350, Right: 550, Bottom: 450},
		},
	}
}

// TestConfig returns a configuration with fast timings for tests.
//
// Session cadences and retry delays are shortened so session tests run in
// milliseconds, and the schedule is open around the clock so recording is
// never suppressed by the wall-clock period gate. Matching and gesture
// thresholds keep their defaults.
//
// Returns:
//   - Config: Configuration tuned for fast test execution
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.AttendanceInterval = 5 * time.Millisecond
	cfg.PoseInterval = 2 * time.Millisecond
	cfg.CaptureRetryDelay = time.Millisecond
	cfg.MaxCaptureFailures = 3
	cfg.ClassDays = []string{
		"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
	}
	cfg.Periods = []PeriodConfig{{Name: "Clase 1", Start: "00:00", End: "23:59"}}

	return cfg
}

// SetDefaults fills in missing configuration values with defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.MatchTolerance == 0 {
		cfg.MatchTolerance = defaults.MatchTolerance
	}
	if cfg.AttendanceInterval == 0 {
		cfg.AttendanceInterval = defaults.AttendanceInterval
	}
	if cfg.PoseInterval == 0 {
		cfg.PoseInterval = defaults.PoseInterval
	}
	if cfg.ParticipationCooldown == 0 {
		cfg.ParticipationCooldown = defaults.ParticipationCooldown
	}
	if cfg.ParticipationPoints == 0 {
		cfg.ParticipationPoints = defaults.ParticipationPoints
	}
	if cfg.MinKeypointConfidence == 0 {
		cfg.MinKeypointConfidence = defaults.MinKeypointConfidence
	}
	if cfg.MinPersonConfidence == 0 {
		cfg.MinPersonConfidence = defaults.MinPersonConfidence
	}
	if cfg.MaxCaptureFailures == 0 {
		cfg.MaxCaptureFailures = defaults.MaxCaptureFailures
	}
	if cfg.CaptureRetryDelay == 0 {
		cfg.CaptureRetryDelay = defaults.CaptureRetryDelay
	}
	if len(cfg.ClassDays) == 0 {
		cfg.ClassDays = defaults.ClassDays
	}
	if len(cfg.Periods) == 0 {
		cfg.Periods = defaults.Periods
	}
	if len(cfg.Zones) == 0 {
		cfg.Zones = defaults.Zones
	}
}

// LoadConfig reads a YAML configuration file.
//
// Missing values are filled with defaults and the result is validated.
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - Config: Parsed configuration
//   - error: Read, parse, or validation error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks configuration constraints.
//
// Configuration errors are fatal at startup, never silently corrected.
//
// Returns:
//   - error: Validation error with a clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.MatchTolerance <= 0 {
		return fmt.Errorf("%w: match tolerance must be > 0, got %v", types.ErrInvalidConfig, cfg.MatchTolerance)
	}
	if cfg.AttendanceInterval <= 0 {
		return fmt.Errorf("%w: attendance interval must be > 0, got %v", types.ErrInvalidConfig, cfg.AttendanceInterval)
	}
	if cfg.PoseInterval <= 0 {
		return fmt.Errorf("%w: pose interval must be > 0, got %v", types.ErrInvalidConfig, cfg.PoseInterval)
	}
	if cfg.ParticipationCooldown <= 0 {
		return fmt.Errorf("%w: participation cooldown must be > 0, got %v", types.ErrInvalidConfig, cfg.ParticipationCooldown)
	}
	if cfg.MaxCaptureFailures <= 0 {
		return fmt.Errorf("%w: max capture failures must be > 0, got %d", types.ErrInvalidConfig, cfg.MaxCaptureFailures)
	}

	if _, err := cfg.classDays(); err != nil {
		return err
	}
	if _, err := cfg.periods(); err != nil {
		return err
	}
	if _, err := cfg.zones(); err != nil {
		return err
	}

	return nil
}

// classDays parses the configured weekday names.
func (cfg *Config) classDays() ([]time.Weekday, error) {
	names := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}

	days := make([]time.Weekday, 0, len(cfg.ClassDays))
	for _, name := range cfg.ClassDays {
		d, ok := names[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown class day %q", types.ErrInvalidConfig, name)
		}
		days = append(days, d)
	}

	return days, nil
}

// periods parses the configured period list, preserving order.
func (cfg *Config) periods() ([]types.Period, error) {
	periods := make([]types.Period, 0, len(cfg.Periods))
	for _, pc := range cfg.Periods {
		if pc.Name == "" {
			return nil, fmt.Errorf("%w: period with empty name", types.ErrInvalidConfig)
		}
		start, err := types.ParseDayTime(pc.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: period %q: %v", types.ErrInvalidConfig, pc.Name, err)
		}
		end, err := types.ParseDayTime(pc.End)
		if err != nil {
			return nil, fmt.Errorf("%w: period %q: %v", types.ErrInvalidConfig, pc.Name, err)
		}
		if end < start {
			return nil, fmt.Errorf("%w: period %q ends before it starts", types.ErrInvalidConfig, pc.Name)
		}
		periods = append(periods, types.Period{Name: pc.Name, Start: start, End: end})
	}

	return periods, nil
}

// zones parses the configured desk zones.
func (cfg *Config) zones() (map[string]types.Rect, error) {
	zones := make(map[string]types.Rect, len(cfg.Zones))
	for _, zc := range cfg.Zones {
		if zc.Name == "" {
			return nil, fmt.Errorf("%w: zone with empty name", types.ErrInvalidConfig)
		}
		if _, ok := zones[zc.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate zone %q", types.ErrInvalidConfig, zc.Name)
		}
		if zc.Right <= zc.Left || zc.Bottom <= zc.Top {
			return nil, fmt.Errorf("%w: zone %q has empty bounds", types.ErrInvalidConfig, zc.Name)
		}
		zones[zc.Name] = types.Rect{Left: zc.Left, Top: zc.Top, Right: zc.Right, Bottom: zc.Bottom}
	}

	return zones, nil
}
