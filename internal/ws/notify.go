package ws

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"skillmatch/internal/domain/skill"
)

// Event names pushed to catalog subscribers.
const (
	EventSkillAdded        = "skill_added"
	EventRelationshipAdded = "relationship_added"
	EventCatalogReloaded   = "catalog_reloaded"
)

type skillPayload struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category,omitempty"`
	Difficulty int     `json:"difficulty"`
	Demand     float64 `json:"demand"`
}

type relationshipPayload struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Kind   string  `json:"kind"`
	Weight float64 `json:"weight"`
}

type catalogEvent struct {
	Type         string               `json:"type"`
	Version      uint64               `json:"version"`
	Skill        *skillPayload        `json:"skill,omitempty"`
	Relationship *relationshipPayload `json:"relationship,omitempty"`
	Timestamp    time.Time            `json:"timestamp"`
}

// Notifier publishes catalog change events through a hub. Every method is
// non-blocking; events are dropped when the hub buffer is full.
type Notifier struct {
	hub    *Hub
	logger *zap.Logger
}

func NewNotifier(hub *Hub, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{hub: hub, logger: logger}
}

func (n *Notifier) SkillAdded(s skill.Skill, version uint64) {
	n.publish(catalogEvent{
		Type:    EventSkillAdded,
		Version: version,
		Skill: &skillPayload{
			ID:         s.ID,
			Name:       s.Name,
			Category:   s.Category,
			Difficulty: s.Difficulty,
			Demand:     s.Demand,
		},
	})
}

func (n *Notifier) RelationshipAdded(rel skill.Relationship, version uint64) {
	n.publish(catalogEvent{
		Type:    EventRelationshipAdded,
		Version: version,
		Relationship: &relationshipPayload{
			Source: rel.Source,
			Target: rel.Target,
			Kind:   string(rel.Kind),
			Weight: rel.Weight,
		},
	})
}

func (n *Notifier) CatalogReloaded(version uint64) {
	n.publish(catalogEvent{
		Type:    EventCatalogReloaded,
		Version: version,
	})
}

func (n *Notifier) publish(event catalogEvent) {
	if n.hub == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("marshal catalog event", zap.String("type", event.Type), zap.Error(err))
		return
	}
	n.hub.Broadcast(payload)
}
