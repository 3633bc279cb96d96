// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/telekom/icmptrace/internal/logger"
)

const (
	maxTTL      = 255
	maxSequence = 1 << 16
	maxRetries  = 5
)

// Validate validates the startup config
func (c *Config) Validate(ctx context.Context) (err error) {
	log := logger.FromContext(ctx)
	t := c.Trace

	if t.MaxHops < 1 || t.MaxHops > maxTTL {
		log.Error("The maximum number of hops should be between 1 and 255", "maxHops", t.MaxHops)
		err = errors.Join(err, ErrInvalidMaxHops)
	}

	if t.Probes < 1 {
		log.Error("At least one probe per hop is required", "probes", t.Probes)
		err = errors.Join(err, ErrInvalidProbes)
	}

	if t.Timeout <= 0 {
		log.Error("The probe timeout should be above 0", "timeout", t.Timeout)
		err = errors.Join(err, ErrInvalidTimeout)
	}

	if t.MaxHops > 0 && t.Probes > 0 && (t.MaxHops+1)*t.Probes > maxSequence {
		log.Error("Too many probes for 16 bit sequence numbers", "maxHops", t.MaxHops, "probes", t.Probes)
		err = errors.Join(err, ErrSequenceOverflow)
	}

	if t.Retry.Count < 0 || t.Retry.Count > maxRetries {
		log.Error("The amount of resolution retries should be between 0 and 5", "retryCount", t.Retry.Count)
		err = errors.Join(err, ErrInvalidRetryCount)
	}

	if vErr := c.Output.Validate(); vErr != nil {
		log.Error("The output format is invalid", "output", c.Output)
		err = errors.Join(err, fmt.Errorf("%w: %w", ErrInvalidOutput, vErr))
	}

	if c.HasTelemetry() {
		if vErr := c.Telemetry.Validate(ctx); vErr != nil {
			log.Error("The telemetry configuration is invalid")
			err = errors.Join(err, vErr)
		}
	}

	if err != nil {
		return fmt.Errorf("validation of configuration failed: %w", err)
	}
	return nil
}
