package models

import "github.com/vkurop/MTA-SchedulingService/internal/domain"

// CanJoinResult результат проверки возможности вступления в сессию
type CanJoinResult struct {
	CanJoin        bool
	Reason         string
	AvailableSpots int
	// WillWaitlist true, когда мест нет, но лист ожидания включен:
	// вступление возможно со статусом waitlist
	WillWaitlist bool
}

// JoinResult результат вступления в групповую сессию
type JoinResult struct {
	ParticipantID  int64
	Status         domain.ParticipantStatus
	AvailableSpots int
}
