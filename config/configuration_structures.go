package config

import "time"

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// JWTConfig : параметры выпуска и проверки токенов
type JWTConfig struct {
	Issuer             string `yaml:"issuer"`
	RefreshTokenSecret string `yaml:"refresh_token_secret"`
	AccessTokenTTL     string `yaml:"access_token_ttl"`
	RefreshTokenTTL    string `yaml:"refresh_token_ttl"`
}

// AccessTTL : время жизни access токена, конфиг должен быть провалидирован
func (c *JWTConfig) AccessTTL() time.Duration {
	d, _ := time.ParseDuration(c.AccessTokenTTL)
	return d
}

// RefreshTTL : время жизни refresh токена
func (c *JWTConfig) RefreshTTL() time.Duration {
	d, _ := time.ParseDuration(c.RefreshTokenTTL)
	return d
}

// KeysConfig : откуда брать RSA ключ для подписи access токенов.
// Source: "file" или "s3"
type KeysConfig struct {
	Source         string   `yaml:"source"`
	PrivateKeyPath string   `yaml:"private_key_path"`
	S3             S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Key      string `yaml:"key"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

type CookieConfig struct {
	Domain string `yaml:"domain"`
	Secure bool   `yaml:"secure"`
}

// AdminConfig : учетная запись администратора, создаваемая при старте
type AdminConfig struct {
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	Firstname string `yaml:"firstname"`
	Lastname  string `yaml:"lastname"`
}

type TTL struct {
	UserCache int `yaml:"userCache"`
}

type JanitorConfig struct {
	Interval string `yaml:"interval"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
