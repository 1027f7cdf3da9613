// Package persistence saves and restores the in-progress form under three fixed keys.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	apperrors "wellness-eligibility/internal/common/errors"
	"wellness-eligibility/internal/common/logger"
	"wellness-eligibility/internal/common/metrics"
	"wellness-eligibility/internal/common/storage"
	"wellness-eligibility/internal/common/validation"
	"wellness-eligibility/internal/models"
)

const (
	KeyFormData    = "wellnessEligibilityFormData"
	KeyCurrentStep = "wellnessEligibilityCurrentStep"
	KeyHasSaved    = "wellnessEligibilityHasSavedData"

	hasSavedValue = "true"
)

// Store is the saved-session store for one device namespace.
type Store struct {
	kv        storage.KeyValueStore
	namespace string
	logger    logger.Logger
}

func NewStore(kv storage.KeyValueStore, namespace string, log logger.Logger) *Store {
	return &Store{
		kv:        kv,
		namespace: namespace,
		logger:    logger.ForComponent(log, "persistence"),
	}
}

func (s *Store) key(name string) string {
	if s.namespace == "" {
		return name
	}
	return s.namespace + ":" + name
}

func (s *Store) keys() []string {
	return []string{s.key(KeyFormData), s.key(KeyCurrentStep), s.key(KeyHasSaved)}
}

// Save overwrites the saved session. Answers that are not yet meaningful are not written.
func (s *Store) Save(ctx context.Context, a models.Answers, step int) error {
	if !a.IsMeaningful() {
		return nil
	}

	data, err := json.Marshal(a)
	if err != nil {
		return apperrors.NewStorageFailedError("save", err)
	}

	writes := []struct{ key, value string }{
		{s.key(KeyFormData), string(data)},
		{s.key(KeyCurrentStep), strconv.Itoa(step)},
		{s.key(KeyHasSaved), hasSavedValue},
	}
	for _, w := range writes {
		if err := s.kv.Set(ctx, w.key, w.value); err != nil {
			metrics.PersistenceWrites.WithLabelValues("save_failed").Inc()
			return apperrors.NewStorageFailedError("save", err)
		}
	}

	metrics.PersistenceWrites.WithLabelValues("save").Inc()
	s.logger.Debug("session saved", map[string]interface{}{"step": step})
	return nil
}

// Load returns the saved session, or nil when there is none. A saved session that fails
// to parse is discarded and reported as absent.
func (s *Store) Load(ctx context.Context) (*models.PersistedSession, error) {
	flag, found, err := s.kv.Get(ctx, s.key(KeyHasSaved))
	if err != nil {
		return nil, apperrors.NewStorageFailedError("load", err)
	}
	if !found {
		return nil, nil
	}

	session, err := s.read(ctx, flag)
	if err != nil {
		if stdErr, ok := apperrors.AsStandardError(err); ok && stdErr.Code == apperrors.ErrCodeStorageFailed {
			return nil, err
		}
		s.discard(ctx, err)
		return nil, nil
	}
	return session, nil
}

func (s *Store) read(ctx context.Context, flag string) (*models.PersistedSession, error) {
	if flag != hasSavedValue {
		return nil, apperrors.NewCorruptPersistedStateError(KeyHasSaved, fmt.Errorf("unexpected value %q", flag))
	}

	raw, found, err := s.kv.Get(ctx, s.key(KeyFormData))
	if err != nil {
		return nil, apperrors.NewStorageFailedError("load", err)
	}
	if !found {
		return nil, apperrors.NewCorruptPersistedStateError(KeyFormData, fmt.Errorf("missing"))
	}

	result, err := validation.ValidateDocument(answersSchema, []byte(raw))
	if err != nil {
		return nil, apperrors.NewCorruptPersistedStateError(KeyFormData, err)
	}
	if !result.Valid {
		return nil, apperrors.NewCorruptPersistedStateError(KeyFormData,
			fmt.Errorf("schema: %s", strings.Join(result.GetErrorMessages(), "; ")))
	}

	answers := models.DefaultAnswers()
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return nil, apperrors.NewCorruptPersistedStateError(KeyFormData, err)
	}
	answers = answers.Clone()
	if !answers.IsMeaningful() {
		return nil, apperrors.NewCorruptPersistedStateError(KeyFormData, fmt.Errorf("no meaningful answers"))
	}

	rawStep, found, err := s.kv.Get(ctx, s.key(KeyCurrentStep))
	if err != nil {
		return nil, apperrors.NewStorageFailedError("load", err)
	}
	step, convErr := strconv.Atoi(strings.TrimSpace(rawStep))
	if !found || convErr != nil || !models.IsValidStep(step) {
		return nil, apperrors.NewCorruptPersistedStateError(KeyCurrentStep, fmt.Errorf("invalid step %q", rawStep))
	}

	return &models.PersistedSession{Answers: answers, Step: step, HasData: true}, nil
}

func (s *Store) discard(ctx context.Context, cause error) {
	s.logger.Warn("discarding unreadable saved session", map[string]interface{}{
		"errorCode": string(apperrors.ErrCodeCorruptPersistedState),
		"error":     cause,
	})
	metrics.PersistenceWrites.WithLabelValues("discard").Inc()
	if err := s.kv.Del(ctx, s.keys()...); err != nil {
		s.logger.Error("failed to clear unreadable session", map[string]interface{}{"error": err})
	}
}

// Clear removes all three keys.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Del(ctx, s.keys()...); err != nil {
		metrics.PersistenceWrites.WithLabelValues("clear_failed").Inc()
		return apperrors.NewStorageFailedError("clear", err)
	}
	metrics.PersistenceWrites.WithLabelValues("clear").Inc()
	s.logger.Debug("session cleared", nil)
	return nil
}
