// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/splash-network/splashd/fault"
	"github.com/splash-network/splashd/fixtures"
	"github.com/splash-network/splashd/rpc/certificate"
)

func TestMakeAndGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir := t.TempDir()
	cerFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")

	err := certificate.MakeSelfSigned("rpc", cerFile, keyFile, []string{"127.0.0.1"})
	assert.Nil(t, err, "wrong MakeSelfSigned")

	err = certificate.MakeSelfSigned("rpc", cerFile, keyFile, nil)
	assert.Equal(t, fault.CertificateFileAlreadyExists, err, "certificate overwritten")

	cer, _ := os.ReadFile(cerFile)
	key, _ := os.ReadFile(keyFile)

	tlsConfig, fingerprint, err := certificate.Get(
		logger.New(fixtures.LogCategory),
		"test",
		string(cer),
		string(key),
	)
	assert.Nil(t, err, "wrong Get")

	pair, _ := tls.X509KeyPair(cer, key)

	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair.Certificate, tlsConfig.Certificates[0].Certificate, "wrong config")
}

func TestGetMismatch(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", "not a certificate", "not a key")
	assert.NotNil(t, err, "invalid pair accepted")
}
