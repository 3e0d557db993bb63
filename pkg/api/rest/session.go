package rest

import (
	"errors"
	"fmt"
	"time"

	rerrors "github.com/flowgate/flowgate/pkg/errors"
	"github.com/flowgate/flowgate/pkg/session"
)

// sessionInfo is the wire shape of one session in API responses.
type sessionInfo struct {
	SessionID    string `json:"session_id"`
	Sequence     uint64 `json:"sequence"`
	SessionName  string `json:"session_name"`
	PolicyName   string `json:"policy_name"`
	FilterName   string `json:"filter_name"`
	RouteName    string `json:"route_name"`
	Lifespan     string `json:"lifespan,omitempty"`
	Description  string `json:"description,omitempty"`
	CreationDate string `json:"creation_date"`
}

func toSessionInfo(s session.Session) sessionInfo {
	info := sessionInfo{
		SessionID:    s.SessionID.String(),
		Sequence:     s.Sequence,
		SessionName:  s.SessionName,
		PolicyName:   s.PolicyName,
		FilterName:   s.FilterName,
		RouteName:    s.RouteName,
		Description:  s.Description,
		CreationDate: s.CreationDate.Format(time.RFC3339),
	}
	if s.Lifespan != 0 {
		info.Lifespan = s.Lifespan.String()
	}
	return info
}

// dispatchSession runs one session_* action, mirroring router.Dispatch's
// required-field and error-message conventions.
func (s *Server) dispatchSession(action string, fields map[string]any) apiResponse {
	switch action {
	case "session_create":
		return s.dispatchSessionCreate(fields)
	case "session_get":
		return s.dispatchSessionGet(fields)
	case "session_list":
		return apiResponse{Message: "Ok", Data: s.sessions.GetSessionsList()}
	case "session_delete":
		return s.dispatchSessionDelete(fields)
	case "session_delete_all":
		s.sessions.DeleteAllSessions()
		return apiResponse{Message: "All sessions deleted"}
	default:
		return apiResponse{Message: fmt.Sprintf("Invalid action '%v'", action)}
	}
}

func (s *Server) dispatchSessionCreate(fields map[string]any) apiResponse {
	name, err := stringField(fields, "session_name")
	if err != nil {
		return apiResponse{Message: err.Error()}
	}
	policy, err := stringField(fields, "policy_name")
	if err != nil {
		return apiResponse{Message: err.Error()}
	}
	filter, err := stringField(fields, "filter_name")
	if err != nil {
		return apiResponse{Message: err.Error()}
	}
	route, err := stringField(fields, "route_name")
	if err != nil {
		return apiResponse{Message: err.Error()}
	}

	var lifespan time.Duration
	if raw, ok := fields["lifespan"]; ok {
		s, ok := raw.(string)
		if !ok {
			return apiResponse{Message: `Error: Missing "lifespan" parameter`}
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return apiResponse{Message: fmt.Sprintf("Error: invalid \"lifespan\" parameter: %v", err)}
		}
		lifespan = d
	}
	description, _ := fields["description"].(string)

	sess, err := s.sessions.CreateSession(name, policy, filter, route, lifespan, description)
	if err != nil {
		return apiResponse{Message: "Error: " + sessionErrorMessage(err)}
	}
	return apiResponse{Message: fmt.Sprintf("Session '%s' created", name), Data: toSessionInfo(sess)}
}

func (s *Server) dispatchSessionGet(fields map[string]any) apiResponse {
	name, err := stringField(fields, "session_name")
	if err != nil {
		return apiResponse{Message: err.Error()}
	}
	sess, ok := s.sessions.GetSession(name)
	if !ok {
		return apiResponse{Message: fmt.Sprintf("Error: Session '%s' not found", name)}
	}
	return apiResponse{Message: "Ok", Data: toSessionInfo(sess)}
}

func (s *Server) dispatchSessionDelete(fields map[string]any) apiResponse {
	name, err := stringField(fields, "session_name")
	if err != nil {
		return apiResponse{Message: err.Error()}
	}
	if !s.sessions.DeleteSession(name) {
		return apiResponse{Message: fmt.Sprintf("Error: Session '%s' not found", name)}
	}
	return apiResponse{Message: fmt.Sprintf("Session '%s' deleted", name)}
}

func sessionErrorMessage(err error) string {
	var re *rerrors.RouterError
	if errors.As(err, &re) {
		return re.Message
	}
	return err.Error()
}

func stringField(fields map[string]any, name string) (string, error) {
	v, ok := fields[name]
	if !ok {
		return "", fmt.Errorf(`Error: Missing "%s" parameter`, name)
	}
	str, ok := v.(string)
	if !ok || str == "" {
		return "", fmt.Errorf(`Error: Missing "%s" parameter`, name)
	}
	return str, nil
}
