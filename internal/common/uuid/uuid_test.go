package uuid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type UUIDTestSuite struct {
	suite.Suite
	gen *DefaultUUID
}

func (s *UUIDTestSuite) SetupTest() {
	s.gen = New()
}

func TestUUIDTestSuite(t *testing.T) {
	suite.Run(t, new(UUIDTestSuite))
}

func (s *UUIDTestSuite) TestVersionSeven() {
	id, err := uuid.Parse(s.gen.NewUUID())
	s.Require().NoError(err)
	s.Equal(uuid.Version(7), id.Version())
}

func (s *UUIDTestSuite) TestIDsSortByCreation() {
	prev := s.gen.NewUUID()
	for i := 0; i < 100; i++ {
		next := s.gen.NewUUID()
		s.Less(prev, next)
		prev = next
	}
}
