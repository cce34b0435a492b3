package jrpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/time/rate"
)

type FilterSuite struct {
	suite.Suite

	tr  *captureTransmitter
	reg *Registry
}

func (s *FilterSuite) SetupTest() {
	s.tr = newCapture()
	s.reg = New(s.tr)
}

func (s *FilterSuite) TestRunInRegistrationOrder() {
	var order []int
	handlerRan := false

	s.Require().NoError(RegisterOneToOne(s.reg, "math/add", func(ctx context.Context, ep string, p pair) (int, error) {
		handlerRan = true
		s.Equal([]int{1, 2, 3}, order, "all filters run before the handler")
		return p.A + p.B, nil
	}))

	for i := 1; i <= 3; i++ {
		i := i
		s.reg.RegisterFilter(func(method string, params any) error {
			order = append(order, i)
			return nil
		}, "math/add")
	}

	s.Require().NoError(s.reg.HandleRequest(context.Background(), "ep1", "1", "math/add", ParamsFromJSON([]byte(`{"a":1,"b":1}`))))
	s.Equal([]int{1, 2, 3}, order)
	s.True(handlerRan)
}

func (s *FilterSuite) TestRejectionAbortsDispatch() {
	var order []int
	handlerRan := false
	rejected := errors.New("denied")

	s.Require().NoError(RegisterOneToOne(s.reg, "math/add", func(ctx context.Context, ep string, p pair) (int, error) {
		handlerRan = true
		return 0, nil
	}))

	s.reg.RegisterFilter(func(method string, params any) error {
		order = append(order, 1)
		return nil
	}, "math/add")
	s.reg.RegisterFilter(func(method string, params any) error {
		order = append(order, 2)
		return rejected
	}, "math/add")
	s.reg.RegisterFilter(func(method string, params any) error {
		order = append(order, 3)
		return nil
	}, "math/add")

	err := s.reg.HandleRequest(context.Background(), "ep1", "1", "math/add", ParamsFromJSON([]byte(`{"a":1,"b":1}`)))

	var fe *FilterError
	s.Require().ErrorAs(err, &fe)
	s.ErrorIs(err, rejected)
	s.Equal([]int{1, 2}, order, "filters after the rejecting one never run")
	s.False(handlerRan, "handler never runs after rejection")

	s.Require().Equal(1, s.tr.count())
	env := decodeEnvelope(s.T(), s.tr.last().message)
	s.Require().NotNil(env.Error)
	s.Equal(CodeInvalidRequest, env.Error.Code)
}

func (s *FilterSuite) TestRejectionOnNotificationIsNotTransmitted() {
	s.Require().NoError(RegisterOneToNone(s.reg, "log/line", func(ctx context.Context, ep string, line string) error {
		s.Fail("handler must not run")
		return nil
	}))

	s.reg.RegisterFilter(func(method string, params any) error {
		return errors.New("denied")
	}, "log/line")

	err := s.reg.HandleNotification(context.Background(), "ep1", "log/line", ParamsFromJSON([]byte(`"x"`)))
	var fe *FilterError
	s.Require().ErrorAs(err, &fe)
	s.Zero(s.tr.count())
}

func (s *FilterSuite) TestReceivesDecodedParams() {
	s.Require().NoError(RegisterOneToOne(s.reg, "math/add", func(ctx context.Context, ep string, p pair) (int, error) {
		return p.A + p.B, nil
	}))
	s.Require().NoError(RegisterManyToOne(s.reg, "math/sum", func(ctx context.Context, ep string, vs []int) (int, error) {
		return 0, nil
	}))
	s.Require().NoError(RegisterNoneToOne(s.reg, "sys/version", func(ctx context.Context, ep string) (string, error) {
		return "", nil
	}))

	var seen []any
	filter := func(method string, params any) error {
		seen = append(seen, params)
		return nil
	}
	s.reg.RegisterFilter(filter, "math/add", "math/sum", "sys/version")

	ctx := context.Background()
	s.Require().NoError(s.reg.HandleRequest(ctx, "ep1", "1", "math/add", ParamsFromJSON([]byte(`{"a":2,"b":3}`))))
	s.Require().NoError(s.reg.HandleRequest(ctx, "ep1", "2", "math/sum", ParamsFromJSON([]byte(`[4,5]`))))
	s.Require().NoError(s.reg.HandleRequest(ctx, "ep1", "3", "sys/version", nil))

	s.Require().Len(seen, 3)
	s.Equal(pair{A: 2, B: 3}, seen[0], "one-param filters see the decoded value")
	s.Equal([]int{4, 5}, seen[1], "many-param filters see the decoded slice")
	s.Nil(seen[2], "no-param filters see nil")
}

func (s *FilterSuite) TestNeverRunForUnknownMethods() {
	ran := false
	s.reg.RegisterFilter(func(method string, params any) error {
		ran = true
		return nil
	}, "no/such")

	err := s.reg.HandleRequest(context.Background(), "ep1", "1", "no/such", ParamsFromJSON([]byte(`{}`)))
	s.Require().ErrorIs(err, ErrMethodNotFound)
	s.False(ran, "lookup failure precedes filtering")
}

func (s *FilterSuite) TestAccumulateAcrossCalls() {
	count := 0
	s.Require().NoError(RegisterNoneToNone(s.reg, "sys/ping", func(ctx context.Context, ep string) error {
		return nil
	}))

	f := func(method string, params any) error {
		count++
		return nil
	}
	s.reg.RegisterFilter(f, "sys/ping")
	s.reg.RegisterFilter(f, "sys/ping")

	s.Require().NoError(s.reg.HandleNotification(context.Background(), "ep1", "sys/ping", nil))
	s.Equal(2, count, "filters accumulate, never overwrite")
}

func (s *FilterSuite) TestRateLimitFilter() {
	calls := 0
	s.Require().NoError(RegisterNoneToNone(s.reg, "sys/ping", func(ctx context.Context, ep string) error {
		calls++
		return nil
	}))

	// Burst of one and effectively no refill within the test.
	s.reg.RegisterFilter(RateLimitFilter(rate.Every(time.Hour), 1), "sys/ping")

	ctx := context.Background()
	s.Require().NoError(s.reg.HandleNotification(ctx, "ep1", "sys/ping", nil))

	err := s.reg.HandleNotification(ctx, "ep1", "sys/ping", nil)
	var fe *FilterError
	s.Require().ErrorAs(err, &fe)
	s.Equal(1, calls)
}

func TestFilterSuite(t *testing.T) {
	suite.Run(t, new(FilterSuite))
}
