package services

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/ova-combat/internal/combat"
	"github.com/KirkDiggler/ova-combat/internal/dice"
	"github.com/KirkDiggler/ova-combat/internal/notify"
	"github.com/KirkDiggler/ova-combat/internal/repositories/characters"
	"github.com/KirkDiggler/ova-combat/internal/repositories/encounters"
	characterService "github.com/KirkDiggler/ova-combat/internal/services/character"
	combatService "github.com/KirkDiggler/ova-combat/internal/services/combat"
	encounterService "github.com/KirkDiggler/ova-combat/internal/services/encounter"
	"github.com/KirkDiggler/ova-combat/internal/uuid"
)

// Provider holds all service instances
type Provider struct {
	CharacterService characterService.Service
	EncounterService encounterService.Service
	CombatService    combatService.Service
	Registry         *combat.Registry
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	CharacterRepository characters.Repository
	EncounterRepository encounters.Repository
	Notifier            notify.Notifier
	Roller              dice.Roller
	UUIDGenerator       uuid.Generator
	Logger              *zap.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repositories if none provided
	charRepo := cfg.CharacterRepository
	if charRepo == nil {
		charRepo = characters.NewInMemoryRepository()
	}

	encRepo := cfg.EncounterRepository
	if encRepo == nil {
		encRepo = encounters.NewInMemoryRepository()
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	ids := cfg.UUIDGenerator
	if ids == nil {
		ids = uuid.NewGoogleUUIDGenerator()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	charService := characterService.NewService(&characterService.ServiceConfig{
		Repository:    charRepo,
		Notifier:      cfg.Notifier,
		UUIDGenerator: ids,
		Logger:        logger.Named("character"),
	})

	// Sessions defend with the stats the character service derives
	registry := combat.NewRegistry(charService, ids, logger.Named("session"))

	encService := encounterService.NewService(&encounterService.ServiceConfig{
		Repository:       encRepo,
		CharacterService: charService,
		Sessions:         registry,
		Roller:           roller,
		UUIDGenerator:    ids,
		Logger:           logger.Named("encounter"),
	})

	cmbService := combatService.NewService(&combatService.ServiceConfig{
		Registry:         registry,
		CharacterService: charService,
		EncounterService: encService,
		Roller:           roller,
		UUIDGenerator:    ids,
		Logger:           logger.Named("combat"),
	})

	return &Provider{
		CharacterService: charService,
		EncounterService: encService,
		CombatService:    cmbService,
		Registry:         registry,
	}
}
