package cryptox

import (
	"testing"

	"github.com/brocat-app/brocat/internal/common"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Token string `json:"token"`
	ID    int64  `json:"id"`
}

func TestSealOpenJSON_RoundTrip(t *testing.T) {
	key := common.GenerateRandByteArray(32)
	in := payload{Token: "T1", ID: 42}

	ct, nonce, err := SealJSON(in, key)
	require.NoError(t, err)
	require.NotEmpty(t, ct)
	require.Len(t, nonce, 12)

	var out payload
	require.NoError(t, OpenJSON(ct, nonce, key, &out))
	require.Equal(t, in, out)
}

func TestOpenJSON_WrongKeyFails(t *testing.T) {
	key := common.GenerateRandByteArray(32)
	ct, nonce, err := SealJSON(payload{Token: "T1"}, key)
	require.NoError(t, err)

	var out payload
	other := common.GenerateRandByteArray(32)
	require.Error(t, OpenJSON(ct, nonce, other, &out))
}

func TestOpenJSON_TamperedCiphertextFails(t *testing.T) {
	key := common.GenerateRandByteArray(32)
	ct, nonce, err := SealJSON(payload{Token: "T1"}, key)
	require.NoError(t, err)

	ct[0] ^= 0xff

	var out payload
	require.Error(t, OpenJSON(ct, nonce, key, &out))
}

func TestDeriveKey_DeterministicPerSalt(t *testing.T) {
	secret := []byte("machine-secret")
	salt := common.GenerateRandByteArray(16)

	k1 := DeriveKey(secret, salt)
	k2 := DeriveKey(secret, salt)
	require.Equal(t, k1, k2)
	require.Len(t, k1, 32)

	k3 := DeriveKey(secret, common.GenerateRandByteArray(16))
	require.NotEqual(t, k1, k3)
}
