// Package password provides PBKDF2-SHA256 password hashing with PHC-style
// encoded output and constant-time verification.
//
// Each Hash call draws a fresh random salt, so hashing the same plaintext
// twice yields different stored strings that both verify. Verification
// recomputes the derived key from the parameters embedded in the stored
// string and compares with crypto/subtle; a malformed or corrupted stored
// hash fails verification instead of panicking.
//
// # What this package must NOT do
//
//   - Log or retain plaintext passwords.
//   - Expose a way to recover parameters into a weaker configuration.
//   - Use non-constant-time comparisons for derived keys.
package password
