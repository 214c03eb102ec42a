package proto

import "testing"

func TestParseGetInfoResponse(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    *TargetInfo
		wantErr bool
	}{
		{
			name: "valid response",
			data: []byte{byte(StatusOK), 0x01, 0x02, 0x1E, 0x1E, 0x93, 0x0F},
			want: &TargetInfo{
				VersionMajor:          0x01,
				VersionMinor:          0x02,
				BootloaderSizeInPages: 0x1E,
				Signature:             [3]byte{0x1E, 0x93, 0x0F},
			},
		},
		{
			name:    "wrong length",
			data:    []byte{byte(StatusOK), 0x01},
			wantErr: true,
		},
		{
			name:    "error status",
			data:    []byte{byte(StatusError), 0, 0, 0, 0, 0, 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGetInfoResponse(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *got != *tt.want {
				t.Errorf("ParseGetInfoResponse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseNvramReadResponse(t *testing.T) {
	got, err := ParseNvramReadResponse([]byte{byte(StatusOK), 0x42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0x42 {
		t.Errorf("ParseNvramReadResponse() = 0x%02X, want 0x42", got)
	}

	if _, err := ParseNvramReadResponse([]byte{byte(StatusError), 0x00}); err == nil {
		t.Errorf("expected error for StatusError response")
	}
}

func TestParseStatusOnlyResponse(t *testing.T) {
	if err := ParseStatusOnlyResponse("connect", []byte{byte(StatusOK)}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := ParseStatusOnlyResponse("flash erase page", []byte{byte(StatusError)})
	if err == nil {
		t.Fatalf("expected error for non-OK status")
	}
	if !IsStatusError(err) {
		t.Errorf("expected *StatusResponseError, got %T", err)
	}
}
