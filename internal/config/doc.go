// Package config manages user-level settings stored at
// ~/.create-ts-router-vite/config.yaml. Values can be overridden with
// CTRV_-prefixed environment variables (dots become underscores, so
// git.policy is CTRV_GIT_POLICY).
package config
