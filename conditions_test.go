package quorum_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionParts(t *testing.T) {
	Convey("a condition keeps its parts", t, func() {
		cond := quorum.NewCondition("multisig", "group", []byte{0, 0, 1})

		ext, typ, data, err := cond.Parse()
		So(err, ShouldBeNil)
		So(ext, ShouldEqual, "multisig")
		So(typ, ShouldEqual, "group")
		So(data, ShouldResemble, []byte{0, 0, 1})
		So(cond.String(), ShouldEqual, "multisig/group/000001")
		So(cond.Validate(), ShouldBeNil)

		Convey("and hashes into an address", func() {
			addr := cond.Address()
			So(addr.Validate(), ShouldBeNil)
			So(addr, ShouldResemble, quorum.NewCondition("multisig", "group", []byte{0, 0, 1}).Address())
			So(addr, ShouldNotResemble, quorum.NewCondition("multisig", "group", []byte{0, 0, 2}).Address())
		})
	})

	Convey("a malformed condition is rejected", t, func() {
		cond := quorum.Condition("no-slashes")
		So(errors.ErrInvalidInput.Is(cond.Validate()), ShouldBeTrue)
		_, _, _, err := cond.Parse()
		So(errors.ErrInvalidInput.Is(err), ShouldBeTrue)
		So(cond.String(), ShouldStartWith, "Invalid Condition")
	})
}

func TestAddressPrinting(t *testing.T) {
	addr := quorum.Address("ABCD123456LHB")
	assert.NotEqual(t, fmt.Sprintf("%X", []byte("x")), addr.String())
	assert.Equal(t, "(nil)", quorum.Address(nil).String())

	clone := addr.Clone()
	clone[0] = 'Z'
	assert.Equal(t, byte('A'), addr[0])
	assert.Nil(t, quorum.Address(nil).Clone())
}

func TestAddressBech32(t *testing.T) {
	addr := quorum.NewCondition("sigs", "ed25519", []byte{1, 2, 3}).Address()
	enc, err := addr.Bech32("quorum")
	require.NoError(t, err)

	got, err := quorum.ParseAddress("bech32:" + enc)
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	_, err = quorum.ParseAddress("bech32:quorum1notvalid")
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := quorum.NewCondition("foo", "bar", []byte("conditiondata")).Address()

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr quorum.Address
	}{
		"default decoding": {
			json:     fmt.Sprintf(`"%s"`, addr),
			wantAddr: addr,
		},
		"hex decoding": {
			json:     fmt.Sprintf(`"hex:%s"`, addr),
			wantAddr: addr,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: addr,
		},
		"hex of a wrong length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInvalidInput,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInvalidInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInvalidInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a quorum.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestConditionJSON(t *testing.T) {
	cases := map[string]struct {
		json          string
		wantErr       *errors.Error
		wantCondition quorum.Condition
	}{
		"default decoding": {
			json:          `"foo/bar/636f6e646974696f6e64617461"`,
			wantCondition: quorum.NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"invalid condition format": {
			json:    `"foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInvalidInput,
		},
		"invalid condition data": {
			json:    `"foo/bar/zzzzz"`,
			wantErr: errors.ErrInvalidInput,
		},
		"zero condition": {
			json:          `""`,
			wantCondition: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got quorum.Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !got.Equals(tc.wantCondition) {
				t.Fatalf("expected %q but got condition: %q", tc.wantCondition, got)
			}
		})
	}

	raw, err := json.Marshal(quorum.NewCondition("foo", "bar", []byte("conditiondata")))
	require.NoError(t, err)
	assert.Equal(t, `"foo/bar/636F6E646974696F6E64617461"`, string(raw))

	raw, err = json.Marshal(quorum.Condition(nil))
	require.NoError(t, err)
	assert.Equal(t, `""`, string(raw))
}
