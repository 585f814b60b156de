package render

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func TestNullDeviceHandle(t *testing.T) {
	var h DeviceHandle = NullDeviceHandle{}
	if h.Device() != nil || h.Queue() != nil || h.Adapter() != nil {
		t.Error("null handle exposes a device")
	}
	if got := h.SurfaceFormat(); got != gputypes.TextureFormatUndefined {
		t.Errorf("SurfaceFormat = %v, want undefined", got)
	}
	if got := h.AdapterInfo().Type; got != gpucontext.AdapterTypeUnknown {
		t.Errorf("adapter type = %v, want unknown", got)
	}
}

func TestNewSubmitterFallsBackToSoftware(t *testing.T) {
	sub, err := NewSubmitter(NullDeviceHandle{}, NewImages())
	if err != nil {
		t.Fatalf("NewSubmitter: %v", err)
	}
	if _, ok := sub.(*SoftwareSubmitter); !ok {
		t.Fatalf("submitter is %T, want software fallback", sub)
	}
}

func TestNewGPUSubmitterFromHandleRequiresHAL(t *testing.T) {
	if _, err := NewGPUSubmitterFromHandle(NullDeviceHandle{}, NewImages()); err == nil {
		t.Fatal("want error for handle without HAL access")
	}
}
