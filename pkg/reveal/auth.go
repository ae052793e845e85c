/*
 * Copyright 2025 Wildsight Labs.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package reveal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wildsight/revealsync/pkg/models"
)

const (
	authFlowPassword = "USER_PASSWORD_AUTH"
	authFlowRefresh  = "REFRESH_TOKEN_AUTH"
	amzTarget        = "AWSCognitoIdentityProviderService.InitiateAuth"
	amzContentType   = "application/x-amz-json-1.1"

	// Cognito omits ExpiresIn on some responses; the account pool issues
	// 12-hour tokens.
	defaultExpiresIn = 43200
)

// Authenticate performs the Cognito login exchange and returns a fresh
// session. The account id lookup afterwards is best-effort.
func (c *Client) Authenticate(ctx context.Context, cred models.Credential) (*Session, error) {
	result, err := c.initiateAuth(ctx, authFlowPassword, map[string]string{
		"USERNAME": cred.Username,
		"PASSWORD": cred.Password,
	})
	if err != nil {
		return nil, err
	}

	session := c.sessionFromResult(result)

	accountID, err := c.fetchAccountID(ctx, session)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Account lookup failed after login")
	} else {
		session.AccountID = accountID
		c.logger.Info().Str("account_id", accountID).Msg("Authenticated with Reveal cloud")
	}

	return session, nil
}

// RefreshSession exchanges the refresh token for a new access token. The
// refresh token and account id carry over from the old session; Cognito does
// not reissue them on this flow.
func (c *Client) RefreshSession(ctx context.Context, session *Session) (*Session, error) {
	if session == nil || session.RefreshToken == "" {
		return nil, NewAuthError(AuthRefreshRejected, errNoRefreshToken)
	}

	result, err := c.initiateAuth(ctx, authFlowRefresh, map[string]string{
		"REFRESH_TOKEN": session.RefreshToken,
	})
	if err != nil {
		return nil, err
	}

	renewed := c.sessionFromResult(result)
	renewed.RefreshToken = session.RefreshToken
	renewed.AccountID = session.AccountID

	return renewed, nil
}

func (c *Client) sessionFromResult(result *authenticationResult) *Session {
	expiresIn := result.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}

	now := time.Now()

	return &Session{
		AccessToken:  result.AccessToken,
		IDToken:      result.IDToken,
		RefreshToken: result.RefreshToken,
		IssuedAt:     now,
		ExpiresAt:    now.Add(time.Duration(expiresIn) * time.Second),
	}
}

func (c *Client) initiateAuth(ctx context.Context, flow string, params map[string]string) (*authenticationResult, error) {
	payload, err := json.Marshal(initiateAuthRequest{
		AuthFlow:       flow,
		AuthParameters: params,
		ClientID:       c.cognitoClientID,
	})
	if err != nil {
		return nil, NewAuthError(AuthProviderUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cognitoURL, bytes.NewReader(payload))
	if err != nil {
		return nil, NewAuthError(AuthProviderUnavailable, err)
	}

	req.Header.Set("Content-Type", amzContentType)
	req.Header.Set("X-Amz-Target", amzTarget)
	req.Header.Set("Origin", webOrigin)
	req.Header.Set("Referer", webOrigin+"/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewAuthError(AuthProviderUnavailable, err)
	}
	defer resp.Body.Close()

	// Cognito answers with text/plain content types; read the body first.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewAuthError(AuthProviderUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.classifyCognitoError(resp.StatusCode, body)
	}

	var authResp initiateAuthResponse

	if err := json.Unmarshal(body, &authResp); err != nil {
		return nil, NewAuthError(AuthProviderUnavailable, err)
	}

	if authResp.AuthenticationResult == nil {
		// A 200 without a result means a challenge we do not support, such
		// as MFA; the account cannot be used non-interactively.
		return nil, NewAuthError(AuthInvalidCredential, errNoAuthResult)
	}

	return authResp.AuthenticationResult, nil
}

func (c *Client) classifyCognitoError(status int, body []byte) *AuthError {
	var cogErr cognitoErrorResponse

	_ = json.Unmarshal(body, &cogErr)

	errType := cogErr.Type
	if idx := strings.LastIndex(errType, "#"); idx >= 0 {
		errType = errType[idx+1:]
	}

	wrapped := fmt.Errorf("%w: %d %s", errUnexpectedStatusCode, status, errType)

	switch {
	case status == http.StatusTooManyRequests,
		errType == "TooManyRequestsException",
		errType == "LimitExceededException":
		return NewAuthError(AuthThrottled, wrapped)
	case errType == "NotAuthorizedException",
		errType == "UserNotFoundException",
		errType == "PasswordResetRequiredException",
		errType == "UserNotConfirmedException":
		return NewAuthError(AuthInvalidCredential, wrapped)
	case status >= http.StatusInternalServerError:
		return NewAuthError(AuthProviderUnavailable, wrapped)
	default:
		return NewAuthError(AuthInvalidCredential, wrapped)
	}
}

// fetchAccountID reads the account id associated with the session.
func (c *Client) fetchAccountID(ctx context.Context, session *Session) (string, error) {
	var envelope accountEnvelope

	if err := c.getJSON(ctx, session, "account", nil, &envelope); err != nil {
		return "", err
	}

	if envelope.Response.Account != nil && envelope.Response.Account.AccountID != "" {
		return envelope.Response.Account.AccountID, nil
	}

	return envelope.Response.AccountID, nil
}
