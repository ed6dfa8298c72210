package jwttoken

// ActorValidator adapts JWTService to the auth middleware's Validator
// interface, exposing only the actor identity.
type ActorValidator struct {
	svc *JWTService
}

func NewActorValidator(svc *JWTService) *ActorValidator {
	return &ActorValidator{svc: svc}
}

func (v *ActorValidator) ValidateToken(tokenString string) (string, error) {
	claims, err := v.svc.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.ActorID, nil
}
