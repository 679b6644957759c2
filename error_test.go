package coursechat_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hransun/coursechat"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", coursechat.ErrorCode(nil))
	assert.Equal(t, coursechat.ENOTFOUND, coursechat.ErrorCode(coursechat.Errorf(coursechat.ENOTFOUND, "gone")))
	assert.Equal(t, coursechat.EINTERNAL, coursechat.ErrorCode(errors.New("plain")))

	wrapped := fmt.Errorf("context: %w", coursechat.Errorf(coursechat.EINVALID, "bad input"))
	assert.Equal(t, coursechat.EINVALID, coursechat.ErrorCode(wrapped))
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", coursechat.ErrorMessage(nil))
	assert.Equal(t, "gone", coursechat.ErrorMessage(coursechat.Errorf(coursechat.ENOTFOUND, "gone")))
	assert.Equal(t, "Internal error.", coursechat.ErrorMessage(errors.New("plain")))

	wrapped := fmt.Errorf("context: %w", coursechat.Errorf(coursechat.EINVALID, "bad %s", "input"))
	assert.Equal(t, "bad input", coursechat.ErrorMessage(wrapped))
}
