package socket

import (
	"encoding/json"
	"errors"
	"fmt"

	jwt "github.com/form3tech-oss/jwt-go"

	"github.com/DedS3t/monopoly-engine/platform/engine"
)

var ErrUnauthenticated = errors.New("user not authenticated")

// Payload is the json body every game event carries.
type Payload struct {
	GameId   string `json:"game_id"`
	Token    string `json:"token"`
	Property int    `json:"property"`
}

func ParsePayload(jsonStr string) (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
		return Payload{}, fmt.Errorf("bad payload: %w", err)
	}
	if p.GameId == "" {
		return Payload{}, errors.New("bad payload: game_id missing")
	}
	return p, nil
}

// actionEvents maps socket events onto engine actions.
var actionEvents = map[string]func(Payload) engine.Action{
	"roll-dice":     func(Payload) engine.Action { return engine.RollDice() },
	"request-buy":   func(Payload) engine.Action { return engine.BuyDecision(true) },
	"decline-buy":   func(Payload) engine.Action { return engine.BuyDecision(false) },
	"pay-out-jail":  func(Payload) engine.Action { return engine.PayJailFine() },
	"use-jail-card": func(Payload) engine.Action { return engine.UseJailCard() },
	"mortgage":      func(p Payload) engine.Action { return engine.Mortgage(p.Property) },
	"unmortgage":    func(p Payload) engine.Action { return engine.Unmortgage(p.Property) },
	"buy-house":     func(p Payload) engine.Action { return engine.Build(p.Property) },
	"end-turn":      func(Payload) engine.Action { return engine.EndTurn() },
	"force-end":     func(Payload) engine.Action { return engine.ForceEnd() },
}

func ActionFor(event string, p Payload) (engine.Action, bool) {
	build, ok := actionEvents[event]
	if !ok {
		return engine.Action{}, false
	}
	return build(p), true
}

// UserFromToken validates an HS256 token and returns its user_id claim.
func UserFromToken(raw string, secret []byte) (string, error) {
	if raw == "" {
		return "", ErrUnauthenticated
	}
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrUnauthenticated
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrUnauthenticated
	}
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", ErrUnauthenticated
	}
	return id, nil
}
