// Package store provides the in-memory entity store for a single test run.
// It holds validated requirement, user story, test case, and suite records
// keyed by id, preserving insertion order. The store performs no validation
// itself: callers must only put records that already passed the schema
// predicates, and the tracker is the only writer.
package store

import (
	"iter"

	"github.com/hargabyte/trq/internal/schema"
)

// collection is an insertion-ordered map of records keyed by id.
// A put with an existing id replaces the record in place without
// changing its position.
type collection[T any] struct {
	byID  map[string]T
	order []string
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{byID: make(map[string]T)}
}

func (c *collection[T]) put(id string, record T) {
	if _, ok := c.byID[id]; !ok {
		c.order = append(c.order, id)
	}
	c.byID[id] = record
}

func (c *collection[T]) get(id string) (T, bool) {
	record, ok := c.byID[id]
	return record, ok
}

func (c *collection[T]) has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

func (c *collection[T]) size() int {
	return len(c.order)
}

// all returns a restartable sequence over the records in insertion order.
func (c *collection[T]) all() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, id := range c.order {
			if !yield(c.byID[id]) {
				return
			}
		}
	}
}

// Store holds all entity records for one test run.
type Store struct {
	requirements *collection[*schema.Requirement]
	userStories  *collection[*schema.UserStory]
	testCases    *collection[*schema.TestCase]
	suites       *collection[*schema.Suite]
}

// New creates an empty store.
func New() *Store {
	return &Store{
		requirements: newCollection[*schema.Requirement](),
		userStories:  newCollection[*schema.UserStory](),
		testCases:    newCollection[*schema.TestCase](),
		suites:       newCollection[*schema.Suite](),
	}
}

// PutRequirement stores a requirement record.
func (s *Store) PutRequirement(r *schema.Requirement) {
	s.requirements.put(r.ID, r)
}

// Requirement retrieves a requirement by id.
func (s *Store) Requirement(id string) (*schema.Requirement, bool) {
	return s.requirements.get(id)
}

// HasRequirement reports whether a requirement with the given id exists.
func (s *Store) HasRequirement(id string) bool {
	return s.requirements.has(id)
}

// RequirementCount returns the number of stored requirements.
func (s *Store) RequirementCount() int {
	return s.requirements.size()
}

// Requirements iterates stored requirements in insertion order.
func (s *Store) Requirements() iter.Seq[*schema.Requirement] {
	return s.requirements.all()
}

// PutUserStory stores a user story record.
func (s *Store) PutUserStory(us *schema.UserStory) {
	s.userStories.put(us.ID, us)
}

// UserStory retrieves a user story by id.
func (s *Store) UserStory(id string) (*schema.UserStory, bool) {
	return s.userStories.get(id)
}

// HasUserStory reports whether a user story with the given id exists.
func (s *Store) HasUserStory(id string) bool {
	return s.userStories.has(id)
}

// UserStoryCount returns the number of stored user stories.
func (s *Store) UserStoryCount() int {
	return s.userStories.size()
}

// UserStories iterates stored user stories in insertion order.
func (s *Store) UserStories() iter.Seq[*schema.UserStory] {
	return s.userStories.all()
}

// PutTestCase stores a test case record.
func (s *Store) PutTestCase(tc *schema.TestCase) {
	s.testCases.put(tc.ID, tc)
}

// TestCase retrieves a test case by id.
func (s *Store) TestCase(id string) (*schema.TestCase, bool) {
	return s.testCases.get(id)
}

// HasTestCase reports whether a test case with the given id exists.
func (s *Store) HasTestCase(id string) bool {
	return s.testCases.has(id)
}

// TestCaseCount returns the number of stored test cases.
func (s *Store) TestCaseCount() int {
	return s.testCases.size()
}

// TestCases iterates stored test cases in insertion order.
func (s *Store) TestCases() iter.Seq[*schema.TestCase] {
	return s.testCases.all()
}

// PutSuite stores a suite record.
func (s *Store) PutSuite(su *schema.Suite) {
	s.suites.put(su.ID, su)
}

// Suite retrieves a suite by id.
func (s *Store) Suite(id string) (*schema.Suite, bool) {
	return s.suites.get(id)
}

// HasSuite reports whether a suite with the given id exists.
func (s *Store) HasSuite(id string) bool {
	return s.suites.has(id)
}

// SuiteCount returns the number of stored suites.
func (s *Store) SuiteCount() int {
	return s.suites.size()
}

// Suites iterates stored suites in insertion order.
func (s *Store) Suites() iter.Seq[*schema.Suite] {
	return s.suites.all()
}
