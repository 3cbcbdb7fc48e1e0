package wayfarer

const Version = "0.1.0"
