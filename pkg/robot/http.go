package robot

import (
	"encoding/json"
	"fmt"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/httpc"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/motion"
)

// HTTPDispatcher sends velocity commands to the robot's HTTP API.
type HTTPDispatcher struct {
	BaseURL string
}

// NewHTTPDispatcher creates a dispatcher for the robot at addr
// (host or host:port).
func NewHTTPDispatcher(addr string) *HTTPDispatcher {
	return &HTTPDispatcher{
		BaseURL: fmt.Sprintf("http://%s", addr),
	}
}

// velocityPayload is the wire format for a velocity command.
type velocityPayload struct {
	Linear   float64 `json:"linear_velocity"`
	Angular  float64 `json:"angular_velocity"`
	Duration float64 `json:"duration"`
}

// Dispatch delivers the command. Emergency commands use the dedicated stop
// endpoint so the platform halts even if the velocity endpoint is wedged.
func (d *HTTPDispatcher) Dispatch(cmd motion.Command) error {
	if cmd.Priority == motion.PriorityEmergency {
		resp, err := httpc.PostJSON(d.BaseURL+"/api/move/stop", []byte(`{}`))
		if err != nil {
			return fmt.Errorf("emergency stop request failed: %w", err)
		}
		resp.Body.Close()
		return nil
	}

	data, err := json.Marshal(velocityPayload{
		Linear:   cmd.Linear,
		Angular:  cmd.Angular,
		Duration: cmd.Duration.Seconds(),
	})
	if err != nil {
		return fmt.Errorf("marshal velocity payload: %w", err)
	}

	resp, err := httpc.PostJSON(d.BaseURL+"/api/move/velocity", data)
	if err != nil {
		return fmt.Errorf("velocity request failed: %w", err)
	}
	resp.Body.Close()

	return nil
}

// Status returns the robot daemon state, for startup checks.
func (d *HTTPDispatcher) Status() (string, error) {
	resp, err := httpc.Get(d.BaseURL + "/api/daemon/status")
	if err != nil {
		return "", fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	var status struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return "", fmt.Errorf("decode status: %w", err)
	}

	return status.State, nil
}
