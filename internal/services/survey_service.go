package services

import (
	"context"
	"sync"

	"github.com/soaringjerry/Sondage/internal/kv"
	"github.com/soaringjerry/Sondage/internal/utils"
)

// SurveyStore owns the ordered section list and its questions.
//
// Ids are max+1 within their scope (sections over the whole definition,
// questions within their section), so deleting the highest id and adding again
// reuses it. Mutators that target a missing id leave the definition unchanged.
type SurveyStore struct {
	store kv.Store
	seed  []Section

	mu       sync.Mutex
	sections []Section
}

// NewSurveyStore binds the store to its backend. seed is installed by Init when
// nothing is persisted yet; nil selects DefaultSections.
func NewSurveyStore(store kv.Store, seed []Section) *SurveyStore {
	if seed == nil {
		seed = DefaultSections()
	}
	return &SurveyStore{store: store, seed: cloneSections(seed)}
}

// Init hydrates the definition, persisting the seed on first run.
func (s *SurveyStore) Init(ctx context.Context) error {
	var sections []Section
	found, err := kv.Load(ctx, s.store, kv.KeyDefinition, &sections)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if found {
		s.sections = normalizeLoaded(sections)
		return nil
	}
	seed := cloneSections(s.seed)
	if err := kv.Save(ctx, s.store, kv.KeyDefinition, seed); err != nil {
		return err
	}
	s.sections = seed
	return nil
}

func normalizeLoaded(in []Section) []Section {
	if in == nil {
		return []Section{}
	}
	return cloneSections(in)
}

// Sections returns a copy of the current definition.
func (s *SurveyStore) Sections() []Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSections(s.sections)
}

// Section looks up one section by id.
func (s *SurveyStore) Section(id int) (Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOfSection(s.sections, id); i >= 0 {
		return s.sections[i].clone(), true
	}
	return Section{}, false
}

// AddSection appends a section. Embedded questions are normalized and numbered
// from 1 in the order given.
func (s *SurveyStore) AddSection(ctx context.Context, in SectionInput) ([]Section, error) {
	questions, err := normalizeQuestions(in.Questions)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].ID = i + 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(cloneSections(s.sections), Section{
		ID:          nextSectionID(s.sections),
		Title:       in.Title,
		Description: in.Description,
		Questions:   questions,
	})
	return s.commit(ctx, next)
}

// UpdateSection replaces the section with the same id, questions included.
// Question ids must be unique within the section.
func (s *SurveyStore) UpdateSection(ctx context.Context, sec Section) ([]Section, error) {
	questions, err := normalizeQuestions(sec.Questions)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool, len(questions))
	for _, q := range questions {
		if seen[q.ID] {
			return nil, NewInvalidError(utils.T("question.duplicate_id"))
		}
		seen[q.ID] = true
	}
	sec.Questions = questions
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOfSection(s.sections, sec.ID)
	if i < 0 {
		return cloneSections(s.sections), nil
	}
	next := cloneSections(s.sections)
	next[i] = sec.clone()
	return s.commit(ctx, next)
}

// DeleteSection removes the section and every question in it.
func (s *SurveyStore) DeleteSection(ctx context.Context, id int) ([]Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOfSection(s.sections, id)
	if i < 0 {
		return cloneSections(s.sections), nil
	}
	next := cloneSections(s.sections)
	next = append(next[:i], next[i+1:]...)
	return s.commit(ctx, next)
}

// AddQuestion appends a question to sectionID after stripping blank options.
func (s *SurveyStore) AddQuestion(ctx context.Context, sectionID int, in QuestionInput) ([]Section, error) {
	in, err := NormalizeQuestion(in)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOfSection(s.sections, sectionID)
	if i < 0 {
		return cloneSections(s.sections), nil
	}
	next := cloneSections(s.sections)
	next[i].Questions = append(next[i].Questions, Question{
		ID:            nextQuestionID(next[i].Questions),
		Text:          in.Text,
		Options:       append([]string{}, in.Options...),
		AllowMultiple: in.AllowMultiple,
		HasOther:      in.HasOther,
	})
	return s.commit(ctx, next)
}

func (s *SurveyStore) UpdateQuestion(ctx context.Context, sectionID int, q Question) ([]Section, error) {
	q, err := normalizeQuestion(q)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOfSection(s.sections, sectionID)
	if i < 0 {
		return cloneSections(s.sections), nil
	}
	j := indexOfQuestion(s.sections[i].Questions, q.ID)
	if j < 0 {
		return cloneSections(s.sections), nil
	}
	next := cloneSections(s.sections)
	next[i].Questions[j] = q.clone()
	return s.commit(ctx, next)
}

func (s *SurveyStore) DeleteQuestion(ctx context.Context, sectionID, questionID int) ([]Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOfSection(s.sections, sectionID)
	if i < 0 {
		return cloneSections(s.sections), nil
	}
	j := indexOfQuestion(s.sections[i].Questions, questionID)
	if j < 0 {
		return cloneSections(s.sections), nil
	}
	next := cloneSections(s.sections)
	qs := next[i].Questions
	next[i].Questions = append(qs[:j], qs[j+1:]...)
	return s.commit(ctx, next)
}

// commit persists next and only then makes it current. Callers hold s.mu.
func (s *SurveyStore) commit(ctx context.Context, next []Section) ([]Section, error) {
	if err := kv.Save(ctx, s.store, kv.KeyDefinition, next); err != nil {
		return nil, err
	}
	s.sections = next
	return cloneSections(next), nil
}

func normalizeQuestion(q Question) (Question, error) {
	norm, err := NormalizeQuestion(QuestionInput{Text: q.Text, Options: q.Options, AllowMultiple: q.AllowMultiple, HasOther: q.HasOther})
	if err != nil {
		return q, err
	}
	q.Options = norm.Options
	return q, nil
}

// normalizeQuestions normalizes every question; the first failure rejects the lot.
func normalizeQuestions(in []Question) ([]Question, error) {
	out := make([]Question, 0, len(in))
	for _, q := range in {
		norm, err := normalizeQuestion(q.clone())
		if err != nil {
			return nil, err
		}
		out = append(out, norm)
	}
	return out, nil
}

func indexOfSection(sections []Section, id int) int {
	for i := range sections {
		if sections[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfQuestion(questions []Question, id int) int {
	for i := range questions {
		if questions[i].ID == id {
			return i
		}
	}
	return -1
}

func nextSectionID(sections []Section) int {
	highest := 0
	for _, s := range sections {
		if s.ID > highest {
			highest = s.ID
		}
	}
	return highest + 1
}

func nextQuestionID(questions []Question) int {
	highest := 0
	for _, q := range questions {
		if q.ID > highest {
			highest = q.ID
		}
	}
	return highest + 1
}
