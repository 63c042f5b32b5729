// Package encryption streams password-based AES-256-CFB encryption and decryption.
//
// Every ciphertext starts with a 32-byte random salt, followed by the CFB ciphertext of the
// PKCS7-padded plaintext. Key and IV are derived from the password and salt with PBKDF2
// (HMAC-SHA1, 50000 iterations). Data is processed in fixed-size chunks so that inputs of any
// size run in bounded memory, with an optional progress callback after each chunk.
//
// Transform is the canonical operation; the Stream, Bytes and File functions are adapters over it.
package encryption
