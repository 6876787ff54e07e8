package nats_common

import (
	"strings"

	"github.com/ZanzyTHEbar/atm-go/internal"
	"github.com/nats-io/nats.go"
)

const DefaultSubjectPrefix = "atm.events"

type NATSConfig struct {
	ServerURL     string
	SubjectPrefix string
	ClientID      string
	Username      string
	Password      string
	Token         string
}

// ConfigFrom pulls the NATS settings out of the application config
func ConfigFrom(cfg *internal.Config) NATSConfig {
	return NATSConfig{
		ServerURL:     cfg.NATS.URL,
		SubjectPrefix: cfg.NATS.SubjectPrefix,
		ClientID:      internal.GenerateClientID(),
		Username:      cfg.NATS.User,
		Password:      cfg.NATS.Password,
		Token:         cfg.NATS.Token,
	}
}

// Enabled reports whether a server is configured
func (c NATSConfig) Enabled() bool {
	return strings.TrimSpace(c.ServerURL) != ""
}

func (c NATSConfig) prefix() string {
	prefix := strings.Trim(c.SubjectPrefix, ". ")
	if prefix == "" {
		return DefaultSubjectPrefix
	}
	return prefix
}

// Subject returns the subject an event type is published on, e.g.
// "atm.events.transaction.completed".
func (c NATSConfig) Subject(eventType string) string {
	return c.prefix() + "." + eventType
}

// Wildcard matches every event subject under the prefix
func (c NATSConfig) Wildcard() string {
	return c.prefix() + ".>"
}

// MatchSubject returns whether a subject matches a pattern with wildcard support.
// "*" matches exactly one token and a trailing ">" matches one or more.
func MatchSubject(pattern, subject string) bool {
	if pattern == subject {
		return true
	}

	patternTokens := strings.Split(pattern, ".")
	subjectTokens := strings.Split(subject, ".")

	for i, token := range patternTokens {
		if token == ">" {
			return i == len(patternTokens)-1 && len(subjectTokens) > i
		}
		if i >= len(subjectTokens) {
			return false
		}
		if token != "*" && token != subjectTokens[i] {
			return false
		}
	}
	return len(patternTokens) == len(subjectTokens)
}

// ApplyNATSAuthOptions picks user/password over token authentication
func ApplyNATSAuthOptions(username, password, token string) []nats.Option {
	opts := []nats.Option{}
	logger := internal.GetLogger()
	if username != "" && password != "" {
		opts = append(opts, nats.UserInfo(username, password))
		logger.Info(internal.ComponentNATS, "Using username/password authentication for NATS")
	} else if token != "" {
		opts = append(opts, nats.Token(token))
		logger.Info(internal.ComponentNATS, "Using token authentication for NATS")
	} else {
		logger.Warn(internal.ComponentNATS, "No authentication provided for NATS connection")
	}
	return opts
}
