package server

import (
	"go.uber.org/zap"

	"github.com/WagnerRodrigues181/nutri-lens/internal/service"
)

// SweepAchievements records achievements unlocked since the last run and announces them.
func (s *Server) SweepAchievements() {
	ids, err := service.RecordAchievementUnlocks(s.db, s.now())
	if err != nil {
		s.log.Error("achievement sweep failed", zap.Error(err))
		return
	}
	if len(ids) == 0 {
		return
	}
	s.log.Info("achievements unlocked", zap.Strings("ids", ids))
	s.hub.Broadcast(Message{Action: ActionAchievements, Data: ids})
}
