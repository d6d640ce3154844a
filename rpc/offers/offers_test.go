// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offers_test

import (
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/splash-network/splashd/fault"
	"github.com/splash-network/splashd/fixtures"
	"github.com/splash-network/splashd/offer"
	"github.com/splash-network/splashd/rpc/mocks"
	"github.com/splash-network/splashd/rpc/offers"
)

func testSummary() *offer.Summary {
	return &offer.Summary{
		ID:        "8Yqv5GvQ1xAcSJcVhsdD3fqZ3yvf8FV5H1hqYoY7yGQ3",
		Offered:   map[string]uint64{"xch": 500},
		Requested: map[string]uint64{},
		Offer:     "offer1qqr83wcuu2rykcmqvpsxygqqwc7hynr6hum6e0mnf72sn7uvvkpt68eyumkhelprk0adeg42nlelk2mpafrgx923m0l",
	}
}

func TestSubmit(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	network := mocks.NewMockAPI(ctl)
	codec := mocks.NewMockSummarizer(ctl)

	s := testSummary()
	network.EXPECT().Submit(s.Offer).Return(s, nil).Times(1)

	o := offers.New(logger.New(fixtures.LogCategory), network, codec)

	var reply offers.SummaryReply
	err := o.Submit(&offers.SubmitArguments{Offer: "  " + s.Offer + "\n"}, &reply)
	assert.Nil(t, err, "wrong Submit")
	assert.Equal(t, s.ID, reply.ID, "wrong id")
	assert.Equal(t, uint64(500), reply.Offered["xch"], "wrong offered")
}

func TestSubmitWhenEmpty(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	o := offers.New(logger.New(fixtures.LogCategory), mocks.NewMockAPI(ctl), mocks.NewMockSummarizer(ctl))

	var reply offers.SummaryReply
	err := o.Submit(&offers.SubmitArguments{Offer: " "}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "wrong error")
}

func TestSubmitWhenQueueFull(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	network := mocks.NewMockAPI(ctl)
	network.EXPECT().Submit(gomock.Any()).Return(nil, fault.PublishQueueFull).Times(1)

	o := offers.New(logger.New(fixtures.LogCategory), network, mocks.NewMockSummarizer(ctl))

	var reply offers.SummaryReply
	err := o.Submit(&offers.SubmitArguments{Offer: "offer1abc"}, &reply)
	assert.Equal(t, fault.PublishQueueFull, err, "wrong error")
	assert.Equal(t, "", reply.ID, "reply filled")
}

func TestParse(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	network := mocks.NewMockAPI(ctl)
	codec := mocks.NewMockSummarizer(ctl)

	s := testSummary()
	codec.EXPECT().Summarize(s.Offer).Return(s, nil).Times(1)

	o := offers.New(logger.New(fixtures.LogCategory), network, codec)

	var reply offers.SummaryReply
	err := o.Parse(&offers.SubmitArguments{Offer: s.Offer}, &reply)
	assert.Nil(t, err, "wrong Parse")
	assert.Equal(t, *s, reply.Summary, "wrong summary")
}

func TestParseWhenInvalid(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	codec := mocks.NewMockSummarizer(ctl)
	failure := &fault.ParseFailure{Err: fault.MalformedEncoding}
	codec.EXPECT().Summarize("offer1zzz").Return(nil, failure).Times(1)

	o := offers.New(logger.New(fixtures.LogCategory), mocks.NewMockAPI(ctl), codec)

	var reply offers.SummaryReply
	err := o.Parse(&offers.SubmitArguments{Offer: "offer1zzz"}, &reply)
	assert.Equal(t, failure, err, "wrong error")
}
